package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

// maxConcurrentPublishes caps adapter fan-out within one dispatch and
// across the sweep.
const maxConcurrentPublishes = 10

type PublishService interface {
	PublishPost(ctx context.Context, postID string) (*transfer.DispatchOutcome, error)
	ProcessScheduled(ctx context.Context) ([]*transfer.DispatchOutcome, error)
	PublishingStatus(ctx context.Context) (map[string]bool, error)
	History(ctx context.Context, postID string) ([]*models.PublishHistory, error)
}

type publishService struct {
	cfg        config.Config
	pr         repository.PostRepository
	ph         repository.PublishHistoryRepository
	sa         repository.SocialAccountRepository
	publishers map[string]PlatformPublisher
}

func NewPublishService(
	cfg config.Config,
	pr repository.PostRepository,
	ph repository.PublishHistoryRepository,
	sa repository.SocialAccountRepository,
	publishers ...PlatformPublisher) PublishService {
	byPlatform := make(map[string]PlatformPublisher, len(publishers))
	for _, p := range publishers {
		byPlatform[p.Platform()] = p
	}
	return &publishService{
		cfg:        cfg,
		pr:         pr,
		ph:         ph,
		sa:         sa,
		publishers: byPlatform,
	}
}

// PublishPost dispatches a post to every platform it has content for,
// in parallel, and persists the aggregate. The post ends up published
// only when every platform succeeded; any failure marks it failed so
// retry picks it up.
func (s *publishService) PublishPost(ctx context.Context, postID string) (*transfer.DispatchOutcome, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	targets := post.TargetPlatforms()
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: post has no platform content", ErrValidation)
	}

	results := s.dispatch(ctx, post, targets)

	for _, r := range results {
		history := &models.PublishHistory{
			PostID:       post.ID,
			Platform:     r.Platform,
			Success:      r.Success,
			RemoteID:     r.PostID,
			ErrorMessage: r.Error,
		}
		if _, err := s.ph.Create(ctx, history); err != nil {
			slog.Info("failed to record publish history", "post_id", post.ID, "error", err)
		}
	}

	allOK := true
	for _, r := range results {
		if !r.Success {
			allOK = false
			break
		}
	}

	status := models.PostStatusFailed
	publishedAt := nullTime()
	if allOK {
		status = models.PostStatusPublished
		publishedAt = newNullTime(time.Now())
	}
	if err := s.pr.SetPublished(ctx, post.ID, status, publishedAt); err != nil {
		return nil, fmt.Errorf("error updating post status: %w", err)
	}

	return &transfer.DispatchOutcome{
		PostID:  post.ID,
		Topic:   post.Topic,
		Results: results,
	}, nil
}

func (s *publishService) dispatch(ctx context.Context, post *models.Post, targets []string) []transfer.PublishResult {
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentPublishes)
	results := make([]transfer.PublishResult, len(targets))

	for i, platform := range targets {
		publisher, ok := s.publishers[platform]
		if !ok {
			results[i] = failure(platform, fmt.Errorf("no publisher configured for %s", platform))
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p PlatformPublisher) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = p.Publish(ctx, post)
		}(i, publisher)
	}
	wg.Wait()

	return results
}

// ProcessScheduled is the sweep behind the cron tick. Each due post is
// claimed with an atomic status flip before dispatch so two sweepers, or
// a sweeper racing the queue worker, can never publish the same post
// twice.
func (s *publishService) ProcessScheduled(ctx context.Context) ([]*transfer.DispatchOutcome, error) {
	posts, err := s.pr.GetScheduledBefore(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error loading due posts: %w", err)
	}

	var outcomes []*transfer.DispatchOutcome
	for _, post := range posts {
		claimed, err := s.pr.ClaimForPublish(ctx, post.ID)
		if err != nil {
			slog.Info("failed to claim post", "post_id", post.ID, "error", err)
			continue
		}
		if !claimed {
			// Another worker got there first.
			continue
		}

		outcome, err := s.PublishPost(ctx, post.ID)
		if err != nil {
			slog.Info("failed to publish post", "post_id", post.ID, "error", err)
			outcomes = append(outcomes, &transfer.DispatchOutcome{
				PostID: post.ID,
				Topic:  post.Topic,
				Error:  err.Error(),
			})
			continue
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// PublishingStatus reports which platforms have credentials available,
// either a connected account or env configuration.
func (s *publishService) PublishingStatus(ctx context.Context) (map[string]bool, error) {
	envTokens := map[string]string{
		models.PlatformInstagram: s.cfg.Credentials.InstagramAccessToken,
		models.PlatformFacebook:  s.cfg.Credentials.FacebookAccessToken,
		models.PlatformTiktok:    s.cfg.Credentials.TiktokAccessToken,
		models.PlatformYoutube:   s.cfg.Credentials.YoutubeAccessToken,
		models.PlatformLinkedin:  s.cfg.Credentials.LinkedinAccessToken,
	}

	status := make(map[string]bool, len(s.publishers))
	for platform := range s.publishers {
		status[platform] = envTokens[platform] != ""
	}

	accounts, err := s.sa.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if _, ok := s.publishers[acc.Platform]; ok && acc.AccessToken != "" {
			status[acc.Platform] = true
		}
	}
	return status, nil
}

func (s *publishService) History(ctx context.Context, postID string) ([]*models.PublishHistory, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return s.ph.ListByPostID(ctx, postID)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

// retryDelay is how far in the future a failed post is rescheduled.
const retryDelay = 5 * time.Minute

type SchedulerService interface {
	GetPostsToPublish(ctx context.Context) ([]*transfer.CalendarPost, error)
	PublishQueue(ctx context.Context) ([]*transfer.CalendarPost, error)
	RetryFailed(ctx context.Context, postID string) (*transfer.PostResponse, error)
}

type schedulerService struct {
	pr       repository.PostRepository
	enqueuer PublishEnqueuer
}

func NewSchedulerService(pr repository.PostRepository, enqueuer PublishEnqueuer) SchedulerService {
	return &schedulerService{
		pr:       pr,
		enqueuer: enqueuer,
	}
}

// GetPostsToPublish returns scheduled posts whose time has come. Posts
// already claimed by a worker carry the publishing status and are not
// returned.
func (s *schedulerService) GetPostsToPublish(ctx context.Context) ([]*transfer.CalendarPost, error) {
	posts, err := s.pr.GetScheduledBefore(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error loading due posts: %w", err)
	}
	return formatCalendarPosts(posts), nil
}

// PublishQueue returns what the dispatcher will pick up within the next
// hour, due posts included.
func (s *schedulerService) PublishQueue(ctx context.Context) ([]*transfer.CalendarPost, error) {
	posts, err := s.pr.GetScheduledBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		return nil, fmt.Errorf("error loading publish queue: %w", err)
	}
	return formatCalendarPosts(posts), nil
}

// RetryFailed puts a failed post back on the schedule a few minutes out.
// Posts in any other status are left untouched.
func (s *schedulerService) RetryFailed(ctx context.Context, postID string) (*transfer.PostResponse, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.Status != models.PostStatusFailed {
		return nil, fmt.Errorf("%w: post is %s, only failed posts can be retried", ErrValidation, post.Status)
	}

	at := time.Now().Add(retryDelay)
	schedule := newNullTime(at)
	if err := s.pr.SetSchedule(ctx, postID, schedule, models.PostStatusScheduled); err != nil {
		return nil, fmt.Errorf("error rescheduling post: %w", err)
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueuePost(ctx, postID, at); err != nil {
			return nil, fmt.Errorf("error enqueuing retry: %w", err)
		}
	}

	post.Status = models.PostStatusScheduled
	post.ScheduledAt = schedule
	return formatPostResponse(post, 0), nil
}

func formatCalendarPosts(posts []*models.Post) []*transfer.CalendarPost {
	out := make([]*transfer.CalendarPost, 0, len(posts))
	for _, p := range posts {
		cp := formatCalendarPost(p)
		out = append(out, &cp)
	}
	return out
}

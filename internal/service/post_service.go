package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type PostService interface {
	Create(ctx context.Context, pc *transfer.PostCreation) (*transfer.PostResponse, error)
	List(ctx context.Context, status string) ([]*transfer.PostResponse, error)
	Get(ctx context.Context, id string) (*transfer.PostResponse, error)
	GetNext(ctx context.Context) (*transfer.PostResponse, error)
	Update(ctx context.Context, id string, upd *transfer.PostUpdate) (*transfer.PostResponse, error)
	Delete(ctx context.Context, id string) error
	Rewrite(ctx context.Context, id, command, platform string) (*transfer.PostResponse, error)
	ListVersions(ctx context.Context, postID string) ([]*transfer.VersionResponse, error)
	RestoreVersion(ctx context.Context, postID string, versionNumber int) (*transfer.PostResponse, error)
}

type postService struct {
	pr  repository.PostRepository
	vr  repository.PostVersionRepository
	pf  repository.ProfileRepository
	gen GeneratorService
}

func NewPostService(
	pr repository.PostRepository,
	vr repository.PostVersionRepository,
	pf repository.ProfileRepository,
	gen GeneratorService) PostService {
	return &postService{
		pr:  pr,
		vr:  vr,
		pf:  pf,
		gen: gen,
	}
}

// rewritablePlatforms are the networks whose caption the rewrite path
// touches when no platform is specified.
var rewritablePlatforms = []string{
	models.PlatformInstagram,
	models.PlatformFacebook,
	models.PlatformTiktok,
	models.PlatformLinkedin,
}

func (s *postService) Create(ctx context.Context, pc *transfer.PostCreation) (*transfer.PostResponse, error) {
	if pc == nil || pc.Topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}

	platforms := pc.Platforms
	if len(platforms) == 0 {
		platforms = models.AllPlatforms
	}
	for _, p := range platforms {
		if !isKnownPlatform(p) {
			return nil, fmt.Errorf("%w: unknown platform %q", ErrValidation, p)
		}
	}

	profile, err := s.getOrCreateProfile(ctx)
	if err != nil {
		return nil, err
	}

	bundle := s.gen.GenerateBundle(ctx, pc.Topic, pc.VoiceNotes, platforms, profile)

	post := &models.Post{
		ID:         uuid.NewString(),
		Topic:      pc.Topic,
		VoiceNotes: pc.VoiceNotes,
		Status:     models.PostStatusDraft,
	}
	applyBundle(post, bundle)

	if err := s.pr.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return formatPostResponse(post, 0), nil
}

func (s *postService) List(ctx context.Context, status string) ([]*transfer.PostResponse, error) {
	if status != "" && !isKnownStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	posts, err := s.pr.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	responses := make([]*transfer.PostResponse, 0, len(posts))
	for _, post := range posts {
		count, err := s.vr.CountByPostID(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, formatPostResponse(post, count))
	}
	return responses, nil
}

func (s *postService) Get(ctx context.Context, id string) (*transfer.PostResponse, error) {
	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	count, err := s.vr.CountByPostID(ctx, id)
	if err != nil {
		return nil, err
	}
	return formatPostResponse(post, count), nil
}

func (s *postService) GetNext(ctx context.Context) (*transfer.PostResponse, error) {
	post, err := s.pr.GetNextDraft(ctx)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	count, err := s.vr.CountByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return formatPostResponse(post, count), nil
}

func (s *postService) Update(ctx context.Context, id string, upd *transfer.PostUpdate) (*transfer.PostResponse, error) {
	if upd == nil {
		return nil, fmt.Errorf("%w: empty update", ErrValidation)
	}

	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	applyUpdate(post, upd)

	if err := s.pr.UpdateContent(ctx, post); err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	count, err := s.vr.CountByPostID(ctx, id)
	if err != nil {
		return nil, err
	}
	return formatPostResponse(post, count), nil
}

// Delete removes the record only. An in-flight dispatch for the post is
// not cancelled; publishing is not transactional with the record store.
func (s *postService) Delete(ctx context.Context, id string) error {
	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	return s.pr.Remove(ctx, id)
}

// Rewrite snapshots the post's content into a new version, then applies
// the command to each targeted platform that has text. The snapshot is
// taken before any model call so prior content is never lost, even when
// every per-platform rewrite fails.
func (s *postService) Rewrite(ctx context.Context, id, command, platform string) (*transfer.PostResponse, error) {
	instruction, ok := RewriteInstruction(command)
	if !ok {
		return nil, fmt.Errorf("%w: unknown rewrite command %q", ErrValidation, command)
	}

	targets := rewritablePlatforms
	if platform != "" {
		if !isRewritablePlatform(platform) {
			return nil, fmt.Errorf("%w: platform %q cannot be rewritten", ErrValidation, platform)
		}
		targets = []string{platform}
	}

	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	versionNumber, err := s.snapshot(ctx, post, command)
	if err != nil {
		return nil, fmt.Errorf("error snapshotting post: %w", err)
	}

	for _, p := range targets {
		text := captionFor(post, p)
		if text == "" {
			continue
		}

		rewritten, err := s.gen.RewriteText(ctx, text, instruction, p, "")
		if err != nil {
			slog.Info("rewrite failed", "platform", p, "post_id", id, "error", err)
			continue
		}
		setCaption(post, p, rewritten)
	}

	if err := s.pr.UpdateContent(ctx, post); err != nil {
		return nil, fmt.Errorf("error saving rewritten post: %w", err)
	}

	return formatPostResponse(post, versionNumber), nil
}

func (s *postService) ListVersions(ctx context.Context, postID string) ([]*transfer.VersionResponse, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	versions, err := s.vr.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]*transfer.VersionResponse, 0, len(versions))
	for _, v := range versions {
		responses = append(responses, formatVersionResponse(v))
	}
	return responses, nil
}

// RestoreVersion copies a snapshot's fields back onto the post. The
// current content is snapshotted first so a restore can itself be undone.
func (s *postService) RestoreVersion(ctx context.Context, postID string, versionNumber int) (*transfer.PostResponse, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	version, err := s.vr.GetByNumber(ctx, postID, versionNumber)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, ErrNotFound
	}

	newCount, err := s.snapshot(ctx, post, "restore")
	if err != nil {
		return nil, fmt.Errorf("error snapshotting post: %w", err)
	}

	post.InstagramCaption = version.InstagramCaption
	post.InstagramHashtags = version.InstagramHashtags
	post.FacebookCaption = version.FacebookCaption
	post.TiktokCaption = version.TiktokCaption
	post.TiktokHashtags = version.TiktokHashtags
	post.YoutubeTitle = version.YoutubeTitle
	post.YoutubeDescription = version.YoutubeDescription
	post.YoutubeTags = version.YoutubeTags
	post.LinkedinCaption = version.LinkedinCaption

	if err := s.pr.UpdateContent(ctx, post); err != nil {
		return nil, fmt.Errorf("error restoring post: %w", err)
	}

	return formatPostResponse(post, newCount), nil
}

// snapshot stores the post's current content as version max+1 and returns
// the new version count.
func (s *postService) snapshot(ctx context.Context, post *models.Post, command string) (int, error) {
	count, err := s.vr.CountByPostID(ctx, post.ID)
	if err != nil {
		return 0, err
	}

	version := &models.PostVersion{
		PostID:             post.ID,
		VersionNumber:      count + 1,
		Command:            command,
		InstagramCaption:   post.InstagramCaption,
		InstagramHashtags:  post.InstagramHashtags,
		FacebookCaption:    post.FacebookCaption,
		TiktokCaption:      post.TiktokCaption,
		TiktokHashtags:     post.TiktokHashtags,
		YoutubeTitle:       post.YoutubeTitle,
		YoutubeDescription: post.YoutubeDescription,
		YoutubeTags:        post.YoutubeTags,
		LinkedinCaption:    post.LinkedinCaption,
	}
	if _, err := s.vr.Create(ctx, version); err != nil {
		return 0, err
	}

	return count + 1, nil
}

func (s *postService) getOrCreateProfile(ctx context.Context) (*models.BrandProfile, error) {
	profile, err := s.pf.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile, err = s.pf.CreateDefault(ctx)
		if err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func isKnownPlatform(p string) bool {
	for _, known := range models.AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

func isRewritablePlatform(p string) bool {
	for _, known := range rewritablePlatforms {
		if p == known {
			return true
		}
	}
	return false
}

func isKnownStatus(s string) bool {
	switch s {
	case models.PostStatusDraft, models.PostStatusScheduled, models.PostStatusPublishing,
		models.PostStatusPublished, models.PostStatusFailed:
		return true
	}
	return false
}

func captionFor(post *models.Post, platform string) string {
	switch platform {
	case models.PlatformInstagram:
		return post.InstagramCaption
	case models.PlatformFacebook:
		return post.FacebookCaption
	case models.PlatformTiktok:
		return post.TiktokCaption
	case models.PlatformLinkedin:
		return post.LinkedinCaption
	}
	return ""
}

func setCaption(post *models.Post, platform, text string) {
	switch platform {
	case models.PlatformInstagram:
		post.InstagramCaption = text
	case models.PlatformFacebook:
		post.FacebookCaption = text
	case models.PlatformTiktok:
		post.TiktokCaption = text
	case models.PlatformLinkedin:
		post.LinkedinCaption = text
	}
}

func applyBundle(post *models.Post, bundle transfer.ByPlatform) {
	if bundle.Instagram != nil {
		post.InstagramCaption = bundle.Instagram.Caption
		post.InstagramHashtags = joinCSV(bundle.Instagram.Hashtags)
	}
	if bundle.Facebook != nil {
		post.FacebookCaption = bundle.Facebook.Caption
	}
	if bundle.Tiktok != nil {
		post.TiktokCaption = bundle.Tiktok.Caption
		post.TiktokHashtags = joinCSV(bundle.Tiktok.Hashtags)
	}
	if bundle.Youtube != nil {
		post.YoutubeTitle = bundle.Youtube.Title
		post.YoutubeDescription = bundle.Youtube.Description
		post.YoutubeTags = joinCSV(bundle.Youtube.Tags)
	}
	if bundle.Linkedin != nil {
		post.LinkedinCaption = bundle.Linkedin.Caption
	}
}

func applyUpdate(post *models.Post, upd *transfer.PostUpdate) {
	if upd.Topic != nil {
		post.Topic = *upd.Topic
	}
	if upd.InstagramCaption != nil {
		post.InstagramCaption = *upd.InstagramCaption
	}
	if upd.InstagramHashtags != nil {
		post.InstagramHashtags = *upd.InstagramHashtags
	}
	if upd.FacebookCaption != nil {
		post.FacebookCaption = *upd.FacebookCaption
	}
	if upd.TiktokCaption != nil {
		post.TiktokCaption = *upd.TiktokCaption
	}
	if upd.TiktokHashtags != nil {
		post.TiktokHashtags = *upd.TiktokHashtags
	}
	if upd.YoutubeTitle != nil {
		post.YoutubeTitle = *upd.YoutubeTitle
	}
	if upd.YoutubeDescription != nil {
		post.YoutubeDescription = *upd.YoutubeDescription
	}
	if upd.YoutubeTags != nil {
		post.YoutubeTags = *upd.YoutubeTags
	}
	if upd.LinkedinCaption != nil {
		post.LinkedinCaption = *upd.LinkedinCaption
	}
	if upd.MediaURL != nil {
		post.MediaURL = *upd.MediaURL
	}
	if upd.MediaType != nil {
		post.MediaType = *upd.MediaType
	}
}

func formatPostResponse(post *models.Post, versionsCount int) *transfer.PostResponse {
	resp := &transfer.PostResponse{
		ID:            post.ID,
		Topic:         post.Topic,
		Status:        post.Status,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		MediaURL:      post.MediaURL,
		MediaType:     post.MediaType,
		ByPlatform:    formatByPlatform(post),
		VersionsCount: versionsCount,
	}
	if post.ScheduledAt.Valid {
		t := post.ScheduledAt.Time
		resp.ScheduledAt = &t
	}
	if post.PublishedAt.Valid {
		t := post.PublishedAt.Time
		resp.PublishedAt = &t
	}
	return resp
}

func formatByPlatform(post *models.Post) transfer.ByPlatform {
	var bp transfer.ByPlatform
	if post.InstagramCaption != "" {
		tags := splitCSV(post.InstagramHashtags)
		bp.Instagram = &transfer.InstagramContent{
			Caption:        post.InstagramCaption,
			Hashtags:       tags,
			HashtagsString: strings.Join(tags, " "),
		}
	}
	if post.FacebookCaption != "" {
		bp.Facebook = &transfer.FacebookContent{Caption: post.FacebookCaption}
	}
	if post.TiktokCaption != "" {
		bp.Tiktok = &transfer.TiktokContent{
			Caption:  post.TiktokCaption,
			Hashtags: splitCSV(post.TiktokHashtags),
		}
	}
	if post.YoutubeTitle != "" {
		bp.Youtube = &transfer.YoutubeContent{
			Title:       post.YoutubeTitle,
			Description: post.YoutubeDescription,
			Tags:        splitCSV(post.YoutubeTags),
		}
	}
	if post.LinkedinCaption != "" {
		bp.Linkedin = &transfer.LinkedinContent{Caption: post.LinkedinCaption}
	}
	return bp
}

func formatVersionResponse(v *models.PostVersion) *transfer.VersionResponse {
	shadow := &models.Post{
		InstagramCaption:   v.InstagramCaption,
		InstagramHashtags:  v.InstagramHashtags,
		FacebookCaption:    v.FacebookCaption,
		TiktokCaption:      v.TiktokCaption,
		TiktokHashtags:     v.TiktokHashtags,
		YoutubeTitle:       v.YoutubeTitle,
		YoutubeDescription: v.YoutubeDescription,
		YoutubeTags:        v.YoutubeTags,
		LinkedinCaption:    v.LinkedinCaption,
	}
	return &transfer.VersionResponse{
		ID:            v.ID,
		PostID:        v.PostID,
		VersionNumber: v.VersionNumber,
		Command:       v.Command,
		ByPlatform:    formatByPlatform(shadow),
		CreatedAt:     v.CreatedAt,
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

// PublishEnqueuer hands a post off to the delayed task queue so the
// worker picks it up at its scheduled time.
type PublishEnqueuer interface {
	EnqueuePost(ctx context.Context, postID string, at time.Time) error
}

type CalendarService interface {
	Schedule(ctx context.Context, postID string, req *transfer.ScheduleRequest) (*transfer.PostResponse, error)
	Unschedule(ctx context.Context, postID string) (*transfer.PostResponse, error)
	GetWeek(ctx context.Context, start time.Time) (*transfer.CalendarWeek, error)
	GetMonth(ctx context.Context, year int, month time.Month) ([]*transfer.CalendarDay, error)
	GetUpcoming(ctx context.Context, limit int) ([]*transfer.CalendarPost, error)
}

type calendarService struct {
	pr       repository.PostRepository
	enqueuer PublishEnqueuer
}

func NewCalendarService(pr repository.PostRepository, enqueuer PublishEnqueuer) CalendarService {
	return &calendarService{
		pr:       pr,
		enqueuer: enqueuer,
	}
}

func (s *calendarService) Schedule(ctx context.Context, postID string, req *transfer.ScheduleRequest) (*transfer.PostResponse, error) {
	if req == nil || req.ScheduledAt == "" {
		return nil, fmt.Errorf("%w: scheduled_at is required", ErrValidation)
	}

	at, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_at must be RFC3339", ErrValidation)
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.Status == models.PostStatusPublishing {
		return nil, fmt.Errorf("%w: post is being published", ErrValidation)
	}

	schedule := newNullTime(at)
	if err := s.pr.SetSchedule(ctx, postID, schedule, models.PostStatusScheduled); err != nil {
		return nil, fmt.Errorf("error scheduling post: %w", err)
	}

	// The cron sweep is the safety net when the queue is unavailable, so
	// an enqueue failure does not fail the request.
	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueuePost(ctx, postID, at); err != nil {
			slog.Info(err.Error())
		}
	}

	post.Status = models.PostStatusScheduled
	post.ScheduledAt = schedule
	return formatPostResponse(post, 0), nil
}

// Unschedule reverts a post to draft and clears its scheduled time. It is
// idempotent: unscheduling a draft is a no-op that still succeeds.
func (s *calendarService) Unschedule(ctx context.Context, postID string) (*transfer.PostResponse, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	if err := s.pr.SetSchedule(ctx, postID, nullTime(), models.PostStatusDraft); err != nil {
		return nil, fmt.Errorf("error unscheduling post: %w", err)
	}

	post.Status = models.PostStatusDraft
	post.ScheduledAt = nullTime()
	return formatPostResponse(post, 0), nil
}

func (s *calendarService) GetWeek(ctx context.Context, start time.Time) (*transfer.CalendarWeek, error) {
	start = startOfDay(start)
	end := start.AddDate(0, 0, 7)

	posts, err := s.pr.GetByTimeRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("error loading week: %w", err)
	}

	week := &transfer.CalendarWeek{
		WeekStart: start.Format("2006-01-02"),
		WeekEnd:   end.AddDate(0, 0, -1).Format("2006-01-02"),
	}

	byDay := groupByDay(posts)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		week.Days = append(week.Days, transfer.CalendarDay{
			Date:  date,
			Posts: byDay[date],
		})
	}

	for _, p := range posts {
		week.TotalPosts++
		switch p.Status {
		case models.PostStatusScheduled:
			week.ScheduledCount++
		case models.PostStatusDraft:
			week.DraftCount++
		}
	}
	return week, nil
}

func (s *calendarService) GetMonth(ctx context.Context, year int, month time.Month) ([]*transfer.CalendarDay, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	posts, err := s.pr.GetByTimeRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("error loading month: %w", err)
	}

	byDay := groupByDay(posts)
	var days []*transfer.CalendarDay
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		days = append(days, &transfer.CalendarDay{
			Date:  date,
			Posts: byDay[date],
		})
	}
	return days, nil
}

func (s *calendarService) GetUpcoming(ctx context.Context, limit int) ([]*transfer.CalendarPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	posts, err := s.pr.GetUpcoming(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error loading upcoming posts: %w", err)
	}

	return formatCalendarPosts(posts), nil
}

func groupByDay(posts []*models.Post) map[string][]transfer.CalendarPost {
	byDay := make(map[string][]transfer.CalendarPost)
	for _, p := range posts {
		if !p.ScheduledAt.Valid {
			continue
		}
		date := p.ScheduledAt.Time.Format("2006-01-02")
		byDay[date] = append(byDay[date], formatCalendarPost(p))
	}
	return byDay
}

func formatCalendarPost(p *models.Post) transfer.CalendarPost {
	cp := transfer.CalendarPost{
		ID:        p.ID,
		Topic:     p.Topic,
		Status:    p.Status,
		Platforms: p.TargetPlatforms(),
		HasMedia:  p.MediaURL != "",
	}
	if p.ScheduledAt.Valid {
		t := p.ScheduledAt.Time
		cp.ScheduledAt = &t
	}
	return cp
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

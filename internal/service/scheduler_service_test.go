package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilit308-creator/autosocial/internal/models"
)

func seedPost(t *testing.T, pr *fakePostRepo, id, status string, scheduledAt time.Time) {
	t.Helper()
	post := &models.Post{
		ID:               id,
		Topic:            "topic " + id,
		Status:           status,
		InstagramCaption: "caption",
	}
	if !scheduledAt.IsZero() {
		post.ScheduledAt = newNullTime(scheduledAt)
	}
	require.NoError(t, pr.Create(context.Background(), post))
}

func TestGetPostsToPublishReturnsOnlyDue(t *testing.T) {
	pr := newFakePostRepo()
	svc := NewSchedulerService(pr, &fakeEnqueuer{})

	seedPost(t, pr, "due", models.PostStatusScheduled, time.Now().Add(-time.Minute))
	seedPost(t, pr, "future", models.PostStatusScheduled, time.Now().Add(2*time.Hour))
	seedPost(t, pr, "draft", models.PostStatusDraft, time.Time{})
	seedPost(t, pr, "claimed", models.PostStatusPublishing, time.Now().Add(-time.Minute))

	ready, err := svc.GetPostsToPublish(context.Background())
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, "due", ready[0].ID)
}

func TestPublishQueueIncludesNextHour(t *testing.T) {
	pr := newFakePostRepo()
	svc := NewSchedulerService(pr, &fakeEnqueuer{})

	seedPost(t, pr, "due", models.PostStatusScheduled, time.Now().Add(-time.Minute))
	seedPost(t, pr, "soon", models.PostStatusScheduled, time.Now().Add(30*time.Minute))
	seedPost(t, pr, "later", models.PostStatusScheduled, time.Now().Add(3*time.Hour))

	queue, err := svc.PublishQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "due", queue[0].ID)
	assert.Equal(t, "soon", queue[1].ID)
}

func TestRetryFailedReschedules(t *testing.T) {
	pr := newFakePostRepo()
	enq := &fakeEnqueuer{}
	svc := NewSchedulerService(pr, enq)

	seedPost(t, pr, "broken", models.PostStatusFailed, time.Time{})

	before := time.Now()
	resp, err := svc.RetryFailed(context.Background(), "broken")
	require.NoError(t, err)

	assert.Equal(t, models.PostStatusScheduled, resp.Status)
	require.NotNil(t, resp.ScheduledAt)
	delay := resp.ScheduledAt.Sub(before)
	assert.InDelta(t, retryDelay.Seconds(), delay.Seconds(), 5)

	require.Len(t, enq.enqueued, 1)
	assert.Equal(t, "broken", enq.enqueued[0].PostID)
}

func TestRetryFailedMissingPost(t *testing.T) {
	pr := newFakePostRepo()
	svc := NewSchedulerService(pr, &fakeEnqueuer{})

	_, err := svc.RetryFailed(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetryFailedRejectsOtherStatuses(t *testing.T) {
	pr := newFakePostRepo()
	enq := &fakeEnqueuer{}
	svc := NewSchedulerService(pr, enq)

	seedPost(t, pr, "live", models.PostStatusPublished, time.Time{})

	_, err := svc.RetryFailed(context.Background(), "live")
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := pr.GetByID(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, stored.Status, "a rejected retry must not touch the post")
	assert.Empty(t, enq.enqueued)
}

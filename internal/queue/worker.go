package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	"github.com/hilit308-creator/autosocial/internal/models"
)

// HandlePublishPostTask runs when a scheduled post's time arrives. The
// claim flips scheduled to publishing atomically; losing the claim means
// the cron sweep or another worker already took the post, so the task
// just drops it.
func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	post, err := j.pr.GetByID(ctx, payload.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		// Deleted or unscheduled since the task was enqueued.
		log.Printf("post %s no longer exists, dropping task", payload.PostID)
		return nil
	}
	if post.Status != models.PostStatusScheduled {
		log.Printf("post %s is %s, dropping task", payload.PostID, post.Status)
		return nil
	}

	claimed, err := j.pr.ClaimForPublish(ctx, payload.PostID)
	if err != nil {
		return err
	}
	if !claimed {
		log.Printf("post %s already claimed, dropping task", payload.PostID)
		return nil
	}

	outcome, err := j.ps.PublishPost(ctx, payload.PostID)
	if err != nil {
		return err
	}

	for _, r := range outcome.Results {
		if !r.Success {
			log.Printf("Error posting to %s for post %s: %s", r.Platform, payload.PostID, r.Error)
		}
	}
	return nil
}

package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// Client wraps the asynq producer so services can schedule a publish
// without depending on asynq directly.
type Client struct {
	asynqClient *asynq.Client
}

func NewClient(asynqClient *asynq.Client) *Client {
	return &Client{asynqClient: asynqClient}
}

// EnqueuePost schedules the post's dispatch for its publish time. Tasks
// landing in the past run immediately.
func (c *Client) EnqueuePost(ctx context.Context, postID string, at time.Time) error {
	taskPayload, err := json.Marshal(PublishPostPayload{PostID: postID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishPost, taskPayload)

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	_, err = c.asynqClient.Enqueue(task, asynq.ProcessIn(delay))
	if err != nil {
		return err
	}

	log.Printf("Task scheduled: post %s at %s", postID, at.Format(time.RFC3339))
	return nil
}

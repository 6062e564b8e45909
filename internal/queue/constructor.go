package queue

import (
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/service"
)

type Queue struct {
	pr repository.PostRepository
	ps service.PublishService
}

func NewQueue(pr repository.PostRepository, ps service.PublishService) *Queue {
	return &Queue{
		pr: pr,
		ps: ps,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hilit308-creator/autosocial/internal/service"
)

type SchedulerHandler struct {
	s service.SchedulerService
}

func NewSchedulerHandler(s service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{s: s}
}

func (h *SchedulerHandler) GetReady(c *fiber.Ctx) error {
	posts, err := h.s.GetPostsToPublish(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, posts)
}

func (h *SchedulerHandler) GetQueue(c *fiber.Ctx) error {
	posts, err := h.s.PublishQueue(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, posts)
}

func (h *SchedulerHandler) RetryPost(c *fiber.Ctx) error {
	post, err := h.s.RetryFailed(c.Context(), c.Params("postId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

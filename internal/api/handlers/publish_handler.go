package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hilit308-creator/autosocial/internal/service"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type PublishHandler struct {
	s service.PublishService
}

func NewPublishHandler(s service.PublishService) *PublishHandler {
	return &PublishHandler{s: s}
}

func (h *PublishHandler) PublishPost(c *fiber.Ctx) error {
	outcome, err := h.s.PublishPost(c.Context(), c.Params("postId"))
	if err != nil {
		return fail(c, err)
	}

	summary := transfer.PublishSummary{Total: len(outcome.Results)}
	for _, r := range outcome.Results {
		if r.Success {
			summary.Success++
		} else {
			summary.Failed++
		}
	}

	return ok(c, fiber.Map{
		"post_id": outcome.PostID,
		"results": outcome.Results,
		"summary": summary,
	})
}

func (h *PublishHandler) ProcessScheduled(c *fiber.Ctx) error {
	outcomes, err := h.s.ProcessScheduled(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{
		"processed": len(outcomes),
		"outcomes":  outcomes,
	})
}

func (h *PublishHandler) PublishingStatus(c *fiber.Ctx) error {
	status, err := h.s.PublishingStatus(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, status)
}

func (h *PublishHandler) History(c *fiber.Ctx) error {
	history, err := h.s.History(c.Context(), c.Params("postId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, history)
}

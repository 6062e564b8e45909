package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/hilit308-creator/autosocial/internal/service"
)

type MediaHandler struct {
	s service.MediaService
}

func NewMediaHandler(s service.MediaService) *MediaHandler {
	return &MediaHandler{s: s}
}

func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	postID := c.FormValue("post_id")
	if postID == "" {
		return badRequest(c, "post_id is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		slog.Info(err.Error())
		return badRequest(c, "no file provided")
	}

	mediaURL, mediaType, err := h.s.AttachMedia(c.Context(), postID, file)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{
		"media_url":  mediaURL,
		"media_type": mediaType,
	})
}

func (h *MediaHandler) RemoveMedia(c *fiber.Ctx) error {
	if err := h.s.RemoveMedia(c.Context(), c.Params("postId")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"removed": true})
}

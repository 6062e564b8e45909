package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/hilit308-creator/autosocial/internal/service"
)

type TweetHandler struct {
	s service.TwitterService
}

func NewTweetHandler(s service.TwitterService) *TweetHandler {
	return &TweetHandler{s: s}
}

func (h *TweetHandler) PostTweet(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "unable to parse request body")
	}

	result, err := h.s.PostTweet(c.Context(), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return created(c, result)
}

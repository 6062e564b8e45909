package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/hilit308-creator/autosocial/internal/service"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type ProfileHandler struct {
	s service.ProfileService
}

func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{s: s}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.s.Get(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var upd transfer.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "unable to parse request body")
	}

	profile, err := h.s.Update(c.Context(), &upd)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, profile)
}

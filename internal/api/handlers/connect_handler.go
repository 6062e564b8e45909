package handlers

import (
	"github.com/gofiber/fiber/v2"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/service"
)

type ConnectHandler struct {
	cfg config.Config
	s   service.ConnectService
}

func NewConnectHandler(cfg config.Config, s service.ConnectService) *ConnectHandler {
	return &ConnectHandler{cfg: cfg, s: s}
}

func (h *ConnectHandler) AuthURL(c *fiber.Ctx) error {
	authURL, err := h.s.AuthURL(c.Params("platform"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"auth_url": authURL})
}

func (h *ConnectHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")

	if err := h.s.HandleCallback(c.Context(), c.Params("platform"), code); err != nil {
		return fail(c, err)
	}
	return c.Redirect(h.cfg.FrontendURL + "/accounts")
}

func (h *ConnectHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.s.ListAccounts(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, accounts)
}

func (h *ConnectHandler) Disconnect(c *fiber.Ctx) error {
	if err := h.s.Disconnect(c.Context(), c.Params("platform")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"disconnected": true})
}

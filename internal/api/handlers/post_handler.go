package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hilit308-creator/autosocial/internal/service"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{s: s}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "unable to parse request body")
	}

	post, err := h.s.Create(c.Context(), &pc)
	if err != nil {
		return fail(c, err)
	}
	return created(c, post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	status := c.Query("status")

	posts, err := h.s.List(c.Context(), status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, posts)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.s.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

func (h *PostHandler) GetNextPost(c *fiber.Ctx) error {
	post, err := h.s.GetNext(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var upd transfer.PostUpdate
	if err := c.BodyParser(&upd); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "unable to parse request body")
	}

	post, err := h.s.Update(c.Context(), c.Params("id"), &upd)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	if err := h.s.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

func (h *PostHandler) RewritePost(c *fiber.Ctx) error {
	var req transfer.RewriteRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "unable to parse request body")
	}

	post, err := h.s.Rewrite(c.Context(), c.Params("id"), req.Command, req.Platform)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

func (h *PostHandler) ListVersions(c *fiber.Ctx) error {
	versions, err := h.s.ListVersions(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, versions)
}

func (h *PostHandler) RestoreVersion(c *fiber.Ctx) error {
	versionNumber, err := strconv.Atoi(c.Params("n"))
	if err != nil {
		return badRequest(c, "version number must be an integer")
	}

	post, err := h.s.RestoreVersion(c.Context(), c.Params("id"), versionNumber)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

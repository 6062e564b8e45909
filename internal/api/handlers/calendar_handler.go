package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hilit308-creator/autosocial/internal/service"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type CalendarHandler struct {
	s service.CalendarService
}

func NewCalendarHandler(s service.CalendarService) *CalendarHandler {
	return &CalendarHandler{s: s}
}

func (h *CalendarHandler) SchedulePost(c *fiber.Ctx) error {
	var req transfer.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "unable to parse request body")
	}

	post, err := h.s.Schedule(c.Context(), c.Params("postId"), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

func (h *CalendarHandler) UnschedulePost(c *fiber.Ctx) error {
	post, err := h.s.Unschedule(c.Context(), c.Params("postId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

func (h *CalendarHandler) GetWeek(c *fiber.Ctx) error {
	start := time.Now()
	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return badRequest(c, "start must be YYYY-MM-DD")
		}
		start = parsed
	}

	week, err := h.s.GetWeek(c.Context(), start)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, week)
}

func (h *CalendarHandler) GetMonth(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return badRequest(c, "year must be an integer")
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return badRequest(c, "month must be 1-12")
	}

	days, err := h.s.GetMonth(c.Context(), year, time.Month(month))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, days)
}

func (h *CalendarHandler) GetUpcoming(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	posts, err := h.s.GetUpcoming(c.Context(), limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, posts)
}

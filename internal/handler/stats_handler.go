package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"go-pricing-sim/internal/middleware"
	"go-pricing-sim/internal/period"
	"go-pricing-sim/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard returns the landing page stat cards and recent simulations
// GET /api/v1/dashboard?period=month
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	response, err := h.statsService.Dashboard(
		middleware.CurrentUser(c),
		middleware.CurrentPermissions(c),
		period.ParseKind(c.Query("period")),
		parseCustomRange(c),
	)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}
	return c.JSON(response)
}

// Analytics returns cross-author aggregates over a window
// GET /api/v1/analytics?period=3months
func (h *StatsHandler) Analytics(c *fiber.Ctx) error {
	response, err := h.statsService.Analytics(
		period.ParseKind(c.Query("period")),
		parseCustomRange(c),
	)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load analytics"})
	}
	return c.JSON(response)
}

// Usage returns the recent activity log
// GET /api/v1/usage?limit=100
func (h *StatsHandler) Usage(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid limit"})
		}
		limit = parsed
	}

	entries, err := h.statsService.UsageHistory(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load usage history"})
	}
	return c.JSON(fiber.Map{"entries": entries, "count": len(entries)})
}

package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-pricing-sim/internal/middleware"
	"go-pricing-sim/internal/period"
	"go-pricing-sim/internal/service"
)

type SimulationHandler struct {
	simulationService service.SimulationService
}

func NewSimulationHandler(simulationService service.SimulationService) *SimulationHandler {
	return &SimulationHandler{simulationService: simulationService}
}

// Preview runs a live calculation without persisting anything
// POST /api/v1/calculator/preview
func (h *SimulationHandler) Preview(c *fiber.Ctx) error {
	var req service.CalculationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.simulationService.Preview(req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(response)
}

// Commit validates and persists the current calculation
// POST /api/v1/simulations
func (h *SimulationHandler) Commit(c *fiber.Ctx) error {
	var req service.CalculationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	simulation, err := h.simulationService.Commit(middleware.CurrentUser(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNameRequired),
			errors.Is(err, service.ErrClientTypeRequired),
			errors.Is(err, service.ErrProjectTypeRequired),
			errors.Is(err, service.ErrMarginRequired),
			errors.Is(err, service.ErrNothingToPrice),
			errors.Is(err, service.ErrClientTypeNotFound),
			errors.Is(err, service.ErrProjectTypeNotFound),
			errors.Is(err, service.ErrMarginUnavailable):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save simulation"})
		}
	}

	return c.Status(201).JSON(simulation)
}

// List returns the history visible to the caller
// GET /api/v1/simulations?period=month&client_type_id=...&search=...&limit=50
func (h *SimulationHandler) List(c *fiber.Ctx) error {
	req := service.HistoryRequest{
		Period:      period.ParseKind(c.Query("period")),
		CustomRange: parseCustomRange(c),
		Search:      c.Query("search"),
	}
	if raw := c.Query("client_type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid client_type_id"})
		}
		req.ClientTypeID = &id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid limit"})
		}
		req.Limit = limit
	}

	simulations, err := h.simulationService.List(middleware.CurrentUser(c), middleware.CurrentPermissions(c), req)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load simulations"})
	}
	return c.JSON(fiber.Map{"simulations": simulations, "count": len(simulations)})
}

// Get returns a single simulation
// GET /api/v1/simulations/:id
func (h *SimulationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid simulation ID"})
	}

	simulation, err := h.simulationService.Get(middleware.CurrentUser(c), middleware.CurrentPermissions(c), id)
	if err != nil {
		if errors.Is(err, service.ErrSimulationForbidden) {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(404).JSON(fiber.Map{"error": "Simulation not found"})
	}
	return c.JSON(simulation)
}

// parseCustomRange reads start_date/end_date (YYYY-MM-DD). An invalid
// or missing bound stays nil; the period filter then treats the custom
// window as absent.
func parseCustomRange(c *fiber.Ctx) period.Range {
	var r period.Range
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			r.Start = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			r.End = &t
		}
	}
	return r
}

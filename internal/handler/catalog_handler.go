package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-pricing-sim/internal/service"
	"go-pricing-sim/pkg/validator"
)

// CatalogHandler exposes the four pricing catalogs. Reads are open to
// any authenticated user; writes are gated per catalog at the router.
type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- Daily rates ---

// GET /api/v1/rates?active=true
func (h *CatalogHandler) ListRates(c *fiber.Ctx) error {
	rates, err := h.catalogService.ListRates(c.Query("active") == "true")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load rates"})
	}
	return c.JSON(fiber.Map{"rates": rates})
}

// POST /api/v1/rates
func (h *CatalogHandler) CreateRate(c *fiber.Ctx) error {
	var req service.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	rate, err := h.catalogService.CreateRate(req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(201).JSON(rate)
}

// PUT /api/v1/rates/:id
func (h *CatalogHandler) UpdateRate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid rate ID"})
	}
	var req service.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	rate, err := h.catalogService.UpdateRate(id, req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(rate)
}

// DELETE /api/v1/rates/:id
func (h *CatalogHandler) DeleteRate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid rate ID"})
	}
	if err := h.catalogService.DeleteRate(id); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rate deleted"})
}

// --- Client types ---

// GET /api/v1/client-types
func (h *CatalogHandler) ListClientTypes(c *fiber.Ctx) error {
	types, err := h.catalogService.ListClientTypes()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load client types"})
	}
	return c.JSON(fiber.Map{"client_types": types})
}

// POST /api/v1/client-types
func (h *CatalogHandler) CreateClientType(c *fiber.Ctx) error {
	var req service.ClientTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	clientType, err := h.catalogService.CreateClientType(req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(201).JSON(clientType)
}

// PUT /api/v1/client-types/:id
func (h *CatalogHandler) UpdateClientType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client type ID"})
	}
	var req service.ClientTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	clientType, err := h.catalogService.UpdateClientType(id, req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(clientType)
}

// DELETE /api/v1/client-types/:id
func (h *CatalogHandler) DeleteClientType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client type ID"})
	}
	if err := h.catalogService.DeleteClientType(id); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Client type deleted"})
}

// --- Margins ---

// GET /api/v1/margins?active=true
func (h *CatalogHandler) ListMargins(c *fiber.Ctx) error {
	margins, err := h.catalogService.ListMargins(c.Query("active") == "true")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load margins"})
	}
	return c.JSON(fiber.Map{"margins": margins})
}

// POST /api/v1/margins
func (h *CatalogHandler) CreateMargin(c *fiber.Ctx) error {
	var req service.MarginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	margin, err := h.catalogService.CreateMargin(req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateMargin) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return catalogError(c, err)
	}
	return c.Status(201).JSON(margin)
}

// PUT /api/v1/margins/:id
func (h *CatalogHandler) UpdateMargin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid margin ID"})
	}
	var req service.MarginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	margin, err := h.catalogService.UpdateMargin(id, req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateMargin) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return catalogError(c, err)
	}
	return c.JSON(margin)
}

// DELETE /api/v1/margins/:id
func (h *CatalogHandler) DeleteMargin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid margin ID"})
	}
	if err := h.catalogService.DeleteMargin(id); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Margin deleted"})
}

// --- Project types ---

// GET /api/v1/project-types
func (h *CatalogHandler) ListProjectTypes(c *fiber.Ctx) error {
	types, err := h.catalogService.ListProjectTypes()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load project types"})
	}
	return c.JSON(fiber.Map{"project_types": types})
}

// POST /api/v1/project-types
func (h *CatalogHandler) CreateProjectType(c *fiber.Ctx) error {
	var req service.ProjectTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	projectType, err := h.catalogService.CreateProjectType(req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(201).JSON(projectType)
}

// PUT /api/v1/project-types/:id
func (h *CatalogHandler) UpdateProjectType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project type ID"})
	}
	var req service.ProjectTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	projectType, err := h.catalogService.UpdateProjectType(id, req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(projectType)
}

// DELETE /api/v1/project-types/:id
func (h *CatalogHandler) DeleteProjectType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project type ID"})
	}
	if err := h.catalogService.DeleteProjectType(id); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project type deleted"})
}

// catalogError maps catalog service errors onto HTTP statuses.
func catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRateNotFound),
		errors.Is(err, service.ErrClientTypeMissing),
		errors.Is(err, service.ErrMarginNotFound),
		errors.Is(err, service.ErrProjectTypeMissing):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCatalogNameRequired),
		errors.Is(err, service.ErrInvalidComplexity):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Catalog operation failed"})
	}
}

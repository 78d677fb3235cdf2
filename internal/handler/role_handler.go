package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-pricing-sim/internal/service"
	"go-pricing-sim/pkg/validator"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// List returns all roles, system roles first
// GET /api/v1/roles
func (h *RoleHandler) List(c *fiber.Ctx) error {
	roles, err := h.roleService.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load roles"})
	}
	return c.JSON(fiber.Map{"roles": roles})
}

// Permissions returns the closed capability catalog for role editors
// GET /api/v1/roles/permissions
func (h *RoleHandler) Permissions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"permissions": h.roleService.AvailablePermissions()})
}

// Create adds a custom role
// POST /api/v1/roles
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req service.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	role, err := h.roleService.Create(req)
	if err != nil {
		return roleError(c, err)
	}
	return c.Status(201).JSON(role)
}

// Update edits a custom role; system roles are locked
// PUT /api/v1/roles/:id
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role ID"})
	}
	var req service.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	role, err := h.roleService.Update(id, req)
	if err != nil {
		return roleError(c, err)
	}
	return c.JSON(role)
}

// Delete removes a custom role not assigned to any user
// DELETE /api/v1/roles/:id
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role ID"})
	}
	if err := h.roleService.Delete(id); err != nil {
		return roleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Role deleted"})
}

func roleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrSystemRoleLocked):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrRoleNameTaken), errors.Is(err, service.ErrRoleInUse):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownPermission), errors.Is(err, service.ErrCatalogNameRequired):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Role operation failed"})
	}
}

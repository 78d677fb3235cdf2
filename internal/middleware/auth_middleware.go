package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/permission"
	"go-pricing-sim/internal/repository"
	"go-pricing-sim/pkg/jwt"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	LocalUser        = "current_user"
	LocalPermissions = "current_permissions"
)

// RequireAuth validates the JWT, checks the session against the DB and
// resolves the caller's capability set. Permissions come from the live
// role record on every request, so a role edit applies immediately.
func RequireAuth(userRepo repository.UserRepository, resolver *permission.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check strict session against DB
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "Account is deactivated"})
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		resolution := resolver.Resolve(user)

		c.Locals(LocalUser, user)
		c.Locals(LocalPermissions, resolution.Set)

		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(LocalUser).(*model.User)
	return user
}

// CurrentPermissions returns the resolved capability set. Absent (e.g.
// middleware not run) it returns the empty set, which denies everything.
func CurrentPermissions(c *fiber.Ctx) permission.Set {
	perms, ok := c.Locals(LocalPermissions).(permission.Set)
	if !ok {
		return permission.Set{}
	}
	return perms
}

// RequirePermission gates a route on a single capability.
func RequirePermission(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentPermissions(c).Has(key) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + key + "' permission",
			})
		}
		return c.Next()
	}
}

// RequireAnyPermission gates a route on at least one of the capabilities.
func RequireAnyPermission(keys ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentPermissions(c).HasAny(keys...) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires one of " + strings.Join(keys, ", ") + " permissions",
			})
		}
		return c.Next()
	}
}

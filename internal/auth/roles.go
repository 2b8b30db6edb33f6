package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/depomarket/retail-service/internal/domain"
)

// RequireRole ensures the authenticated admin has one of the allowed roles.
// With no roles given, any authenticated admin passes.
func RequireRole(allowed ...domain.AdminRole) fiber.Handler {
	allowedSet := make(map[domain.AdminRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Admin == nil {
			return fiber.NewError(fiber.StatusForbidden, "admin required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/owenj053/netone-backend/internal/domain"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// RequireRole ensures the caller holds one of the allowed roles. Roles are
// compared case-insensitively. With no arguments it only requires
// authentication.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		for _, role := range allowed {
			if principal.Role().Is(role) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
}

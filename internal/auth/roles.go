package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/domain"
)

// RequireDriver ensures a DRIVER account is authenticated.
func RequireDriver() fiber.Handler {
	return RequireRole(domain.RoleDriver)
}

// RequireOperator ensures an OPERATOR account is authenticated.
func RequireOperator() fiber.Handler {
	return RequireRole(domain.RoleOperator)
}

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated, role aside.
func RequireAnyRole() fiber.Handler {
	return RequireRole()
}

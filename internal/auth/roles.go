package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodge-registration/internal/domain"
	apperrors "github.com/spec-kit/lodge-registration/pkg/util"
)

// RequireUser ensures an end-user session is present.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeUser {
			return apperrors.NewForbidden("end-user session required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures an admin session is present.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeAdmin {
			return apperrors.NewForbidden("admin session required")
		}
		return c.Next()
	}
}

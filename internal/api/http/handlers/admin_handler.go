package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodge-registration/internal/api/dto"
	"github.com/spec-kit/lodge-registration/internal/service"
	apperrors "github.com/spec-kit/lodge-registration/pkg/util"
)

// AdminHandler exposes the review dashboard endpoints.
type AdminHandler struct {
	auth         *service.AuthService
	applications *service.ApplicationService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, applicationService *service.ApplicationService) *AdminHandler {
	return &AdminHandler{auth: authService, applications: applicationService}
}

// Login handles POST /auth/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.LoginAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"admin": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Setup handles POST /auth/admin/setup.
func (h *AdminHandler) Setup(c *fiber.Ctx) error {
	var req dto.AdminSetupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, err := h.auth.SetupAdmin(c.Context(), req.SetupToken, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// ListApplications handles GET /admin/applications.
func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	apps, err := h.applications.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationSummary, 0, len(apps))
	for i := range apps {
		items = append(items, applicationSummary(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetApplication handles GET /admin/applications/:id.
func (h *AdminHandler) GetApplication(c *fiber.Ctx) error {
	app, err := h.applications.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetail(app)})
}

// UpdateStatus handles PATCH /admin/applications/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	app, err := h.applications.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetail(app)})
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.applications.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

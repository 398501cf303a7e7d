package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodge-registration/internal/api/dto"
	"github.com/spec-kit/lodge-registration/internal/domain"
	"github.com/spec-kit/lodge-registration/internal/service"
	apperrors "github.com/spec-kit/lodge-registration/pkg/util"
)

// ApplicationsHandler manages the public registration endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	auth         *service.AuthService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService, authService *service.AuthService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService, auth: authService}
}

// Submit POST /applications.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.RulesAccepted {
		return apperrors.NewValidationError("rules and regulations must be accepted", nil)
	}
	if req.Password != "" {
		if req.Password != req.ConfirmPassword {
			return apperrors.NewValidationError("passwords do not match", nil)
		}
		if len(req.Password) < 6 {
			return apperrors.NewValidationError("password must be at least 6 characters long", nil)
		}
	}

	app, err := h.applications.Create(c.Context(), submissionInput(&req))
	if err != nil {
		return err
	}

	// Account creation is best-effort: the submission stands on its own and
	// an already-registered email is not an error for the applicant.
	if req.Password != "" {
		if _, _, _, err := h.auth.RegisterUser(c.Context(), req.Email, req.Password); err != nil {
			if !apperrors.IsCode(err, "CONFLICT") {
				return err
			}
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": applicationDetail(app)})
}

// GetByReference GET /applications/reference/:reference. Public status
// lookup, also used by the post-submission success page.
func (h *ApplicationsHandler) GetByReference(c *fiber.Ctx) error {
	app, err := h.applications.GetByReference(c.Context(), c.Params("reference"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetail(app)})
}

func submissionInput(req *dto.CreateApplicationRequest) service.ApplicationCreateInput {
	return service.ApplicationCreateInput{
		FullName:       req.FullName,
		Email:          req.Email,
		MobileNumber:   req.MobileNumber,
		CallUpNumber:   req.CallUpNumber,
		StateOfOrigin:  req.StateOfOrigin,
		LGA:            req.LGA,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth,
		MaritalStatus:  req.MaritalStatus,
		RegistrationNo: req.RegistrationNo,
		Institution:    req.Institution,
		BloodGroup:     req.BloodGroup,
		Genotype:       req.Genotype,
		Allergies:      req.Allergies,
		Disabilities:   req.Disabilities,
		Emergency: domain.EmergencyContact{
			Name:    req.EmergencyName,
			Address: req.EmergencyAddress,
			Phone1:  req.EmergencyPhone1,
			Phone2:  req.EmergencyPhone2,
		},
		NextOfKin: domain.NextOfKin{
			Name:    req.NextOfKinName,
			Address: req.NextOfKinAddress,
			Phone1:  req.NextOfKinPhone1,
			Phone2:  req.NextOfKinPhone2,
		},
		PassportPhoto: req.PassportPhoto,
	}
}

func applicationSummary(app *domain.Application) dto.ApplicationSummary {
	return dto.ApplicationSummary{
		ID:              app.ID,
		ReferenceNumber: app.ReferenceNumber,
		FullName:        app.FullName,
		Email:           app.Email,
		Status:          app.Status,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
}

func applicationDetail(app *domain.Application) dto.ApplicationDetail {
	return dto.ApplicationDetail{
		ID:               app.ID,
		ReferenceNumber:  app.ReferenceNumber,
		Status:           app.Status,
		FullName:         app.FullName,
		Email:            app.Email,
		MobileNumber:     app.MobileNumber,
		CallUpNumber:     app.CallUpNumber,
		StateOfOrigin:    app.StateOfOrigin,
		LGA:              app.LGA,
		Gender:           app.Gender,
		DateOfBirth:      app.DateOfBirth,
		MaritalStatus:    app.MaritalStatus,
		RegistrationNo:   app.RegistrationNo,
		Institution:      app.Institution,
		BloodGroup:       app.BloodGroup,
		Genotype:         app.Genotype,
		Allergies:        app.Allergies,
		Disabilities:     app.Disabilities,
		EmergencyName:    app.Emergency.Name,
		EmergencyAddress: app.Emergency.Address,
		EmergencyPhone1:  app.Emergency.Phone1,
		EmergencyPhone2:  app.Emergency.Phone2,
		NextOfKinName:    app.NextOfKin.Name,
		NextOfKinAddress: app.NextOfKin.Address,
		NextOfKinPhone1:  app.NextOfKin.Phone1,
		NextOfKinPhone2:  app.NextOfKin.Phone2,
		PassportPhoto:    app.PassportPhoto,
		CreatedAt:        app.CreatedAt,
		UpdatedAt:        app.UpdatedAt,
	}
}

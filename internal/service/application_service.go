package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lodge-registration/internal/domain"
	"github.com/spec-kit/lodge-registration/internal/events"
	"github.com/spec-kit/lodge-registration/internal/observability"
	"github.com/spec-kit/lodge-registration/internal/refnum"
	"github.com/spec-kit/lodge-registration/internal/repository"
	apperrors "github.com/spec-kit/lodge-registration/pkg/util"
)

// passport photos are embedded data URIs; cap the encoded payload so a
// single record cannot balloon the row.
const maxPassportPhotoBytes = 2 << 20

// StatsCache caches dashboard counters between admin refreshes.
type StatsCache interface {
	Get(ctx context.Context) (*domain.ApplicationStats, bool)
	Set(ctx context.Context, stats *domain.ApplicationStats)
	Invalidate(ctx context.Context)
}

// ApplicationService mediates all reads and writes of application records.
type ApplicationService struct {
	applications repository.ApplicationRepository
	cache        StatsCache
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
}

// ApplicationDependencies bundles collaborators for the service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	StatsCache      StatsCache
	Dispatcher      events.Dispatcher
	Metrics         *observability.Metrics
}

// ApplicationCreateInput describes a registration submission. Status is
// deliberately absent: creation always yields Pending.
type ApplicationCreateInput struct {
	ReferenceNumber string
	FullName        string
	Email           string
	MobileNumber    string
	CallUpNumber    string
	StateOfOrigin   string
	LGA             string
	Gender          string
	DateOfBirth     string
	MaritalStatus   string
	RegistrationNo  string
	Institution     string
	BloodGroup      string
	Genotype        string
	Allergies       *string
	Disabilities    *string
	Emergency       domain.EmergencyContact
	NextOfKin       domain.NextOfKin
	PassportPhoto   *string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		cache:        deps.StatsCache,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
	}
}

// Create validates and persists a submission, forcing status Pending.
func (s *ApplicationService) Create(ctx context.Context, input ApplicationCreateInput) (*domain.Application, error) {
	if err := validateSubmission(&input); err != nil {
		return nil, err
	}

	reference := strings.TrimSpace(input.ReferenceNumber)
	if reference == "" {
		reference = refnum.Generate()
	}

	app := &domain.Application{
		ReferenceNumber: reference,
		Status:          domain.ApplicationStatusPending,
		FullName:        strings.TrimSpace(input.FullName),
		Email:           normalizeEmail(input.Email),
		MobileNumber:    strings.TrimSpace(input.MobileNumber),
		CallUpNumber:    strings.TrimSpace(input.CallUpNumber),
		StateOfOrigin:   strings.TrimSpace(input.StateOfOrigin),
		LGA:             strings.TrimSpace(input.LGA),
		Gender:          strings.TrimSpace(input.Gender),
		DateOfBirth:     strings.TrimSpace(input.DateOfBirth),
		MaritalStatus:   strings.TrimSpace(input.MaritalStatus),
		RegistrationNo:  strings.TrimSpace(input.RegistrationNo),
		Institution:     strings.TrimSpace(input.Institution),
		BloodGroup:      strings.TrimSpace(input.BloodGroup),
		Genotype:        strings.TrimSpace(input.Genotype),
		Allergies:       input.Allergies,
		Disabilities:    input.Disabilities,
		Emergency:       input.Emergency,
		NextOfKin:       input.NextOfKin,
		PassportPhoto:   input.PassportPhoto,
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.metrics.RecordSubmission()
	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationSubmitted,
		ApplicationID: app.ID,
		Payload: events.ApplicationSubmittedPayload{
			ReferenceNumber: app.ReferenceNumber,
			FullName:        app.FullName,
			Email:           app.Email,
		},
	})
	return app, nil
}

// GetByReference returns the single record for a reference number.
func (s *ApplicationService) GetByReference(ctx context.Context, reference string) (*domain.Application, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, apperrors.NewValidationError("reference number required", nil)
	}
	app, err := s.applications.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"reference_number": reference})
		}
		return nil, apperrors.MapError(err)
	}
	return app, nil
}

// GetByID returns the single record for an id.
func (s *ApplicationService) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return app, nil
}

// ListAll returns every record, newest first. Access control is the route
// layer's concern, not this operation's.
func (s *ApplicationService) ListAll(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.applications.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return apps, nil
}

// ListByEmail returns all records whose email equals the argument, newest
// first. This is a value-equality join: several submissions may share an
// email and all are returned.
func (s *ApplicationService) ListByEmail(ctx context.Context, email string) ([]domain.Application, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}
	apps, err := s.applications.ListByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return apps, nil
}

// UpdateStatus overwrites the record's status. Any known status may follow
// any other, so an admin can revisit a decision; unknown values are rejected
// before any write.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !domain.IsKnownStatus(status) {
		return nil, apperrors.NewValidationError("status must be Pending, Approved, or Rejected", map[string]any{
			"status": string(status),
		})
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.applications.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.metrics.RecordStatusChange(string(status))
	if current.Status != updated.Status {
		s.publishEvent(ctx, events.Event{
			Type:          events.EventApplicationStatusChanged,
			ApplicationID: updated.ID,
			Payload: events.ApplicationStatusChangedPayload{
				ReferenceNumber: updated.ReferenceNumber,
				Email:           updated.Email,
				OldStatus:       current.Status,
				NewStatus:       updated.Status,
			},
		})
	}
	return updated, nil
}

// Stats returns per-status counts, served from cache when fresh.
func (s *ApplicationService) Stats(ctx context.Context) (*domain.ApplicationStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx); ok {
			return stats, nil
		}
	}
	stats, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateSubmission(input *ApplicationCreateInput) error {
	missing := map[string]any{}
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	require("full_name", input.FullName)
	require("email", input.Email)
	require("mobile_number", input.MobileNumber)
	require("state_of_origin", input.StateOfOrigin)
	require("lga", input.LGA)
	require("gender", input.Gender)
	require("date_of_birth", input.DateOfBirth)
	require("emergency_name", input.Emergency.Name)
	require("emergency_address", input.Emergency.Address)
	require("emergency_phone1", input.Emergency.Phone1)
	require("next_of_kin_name", input.NextOfKin.Name)
	require("next_of_kin_address", input.NextOfKin.Address)
	require("next_of_kin_phone1", input.NextOfKin.Phone1)
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", missing)
	}

	if input.PassportPhoto != nil {
		photo := *input.PassportPhoto
		if !strings.HasPrefix(photo, "data:image/") {
			return apperrors.NewValidationError("passport photo must be an embedded image data URI", nil)
		}
		if len(photo) > maxPassportPhotoBytes {
			return apperrors.NewValidationError("passport photo too large", map[string]any{
				"max_bytes": maxPassportPhotoBytes,
			})
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodge-registration/internal/domain"
)

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	GetByReference(ctx context.Context, reference string) (*domain.Application, error)
	ListAll(ctx context.Context) ([]domain.Application, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	CountByStatus(ctx context.Context) (*domain.ApplicationStats, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `
        id, reference_number, status, full_name, email, mobile_number, call_up_number,
        state_of_origin, lga, gender, date_of_birth, marital_status, registration_no,
        institution, blood_group, genotype, allergies, disabilities,
        emergency_name, emergency_address, emergency_phone1, emergency_phone2,
        next_of_kin_name, next_of_kin_address, next_of_kin_phone1, next_of_kin_phone2,
        passport_photo, created_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (
            reference_number, status, full_name, email, mobile_number, call_up_number,
            state_of_origin, lga, gender, date_of_birth, marital_status, registration_no,
            institution, blood_group, genotype, allergies, disabilities,
            emergency_name, emergency_address, emergency_phone1, emergency_phone2,
            next_of_kin_name, next_of_kin_address, next_of_kin_phone1, next_of_kin_phone2,
            passport_photo)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		app.ReferenceNumber,
		app.Status,
		app.FullName,
		app.Email,
		app.MobileNumber,
		app.CallUpNumber,
		app.StateOfOrigin,
		app.LGA,
		app.Gender,
		app.DateOfBirth,
		app.MaritalStatus,
		app.RegistrationNo,
		app.Institution,
		app.BloodGroup,
		app.Genotype,
		app.Allergies,
		app.Disabilities,
		app.Emergency.Name,
		app.Emergency.Address,
		app.Emergency.Phone1,
		app.Emergency.Phone2,
		app.NextOfKin.Name,
		app.NextOfKin.Address,
		app.NextOfKin.Phone1,
		app.NextOfKin.Phone2,
		app.PassportPhoto,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT` + applicationColumns + ` FROM applications WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *applicationRepository) GetByReference(ctx context.Context, reference string) (*domain.Application, error) {
	query := `SELECT` + applicationColumns + ` FROM applications WHERE reference_number=$1`
	return r.fetchSingle(ctx, query, reference)
}

func (r *applicationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Application, error) {
	var app domain.Application
	if err := scanApplication(r.pool.QueryRow(ctx, query, arg), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListAll(ctx context.Context) ([]domain.Application, error) {
	query := `SELECT` + applicationColumns + ` FROM applications ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) ListByEmail(ctx context.Context, email string) ([]domain.Application, error) {
	query := `SELECT` + applicationColumns + ` FROM applications WHERE email=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	query := `UPDATE applications SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING` + applicationColumns
	var app domain.Application
	if err := scanApplication(r.pool.QueryRow(ctx, query, status, id), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context) (*domain.ApplicationStats, error) {
	const query = `SELECT status, COUNT(*) FROM applications GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.ApplicationStats{}
	for rows.Next() {
		var status domain.ApplicationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch status {
		case domain.ApplicationStatusPending:
			stats.Pending = count
		case domain.ApplicationStatusApproved:
			stats.Approved = count
		case domain.ApplicationStatusRejected:
			stats.Rejected = count
		}
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner, app *domain.Application) error {
	return row.Scan(
		&app.ID,
		&app.ReferenceNumber,
		&app.Status,
		&app.FullName,
		&app.Email,
		&app.MobileNumber,
		&app.CallUpNumber,
		&app.StateOfOrigin,
		&app.LGA,
		&app.Gender,
		&app.DateOfBirth,
		&app.MaritalStatus,
		&app.RegistrationNo,
		&app.Institution,
		&app.BloodGroup,
		&app.Genotype,
		&app.Allergies,
		&app.Disabilities,
		&app.Emergency.Name,
		&app.Emergency.Address,
		&app.Emergency.Phone1,
		&app.Emergency.Phone2,
		&app.NextOfKin.Name,
		&app.NextOfKin.Address,
		&app.NextOfKin.Phone1,
		&app.NextOfKin.Phone2,
		&app.PassportPhoto,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

// PatientTypeRepository manages patient type persistence.
type PatientTypeRepository interface {
	Create(ctx context.Context, patientType *domain.PatientType) error
	Update(ctx context.Context, patientType *domain.PatientType) error
	GetByID(ctx context.Context, id string) (*domain.PatientType, error)
	ListActive(ctx context.Context) ([]domain.PatientType, error)
}

type patientTypeRepository struct {
	pool *pgxpool.Pool
}

// NewPatientTypeRepository builds the repository.
func NewPatientTypeRepository(pool *pgxpool.Pool) PatientTypeRepository {
	return &patientTypeRepository{pool: pool}
}

func (r *patientTypeRepository) Create(ctx context.Context, patientType *domain.PatientType) error {
	const query = `
        INSERT INTO patient_types (name, is_active)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		patientType.Name,
		patientType.IsActive,
	).Scan(&patientType.ID, &patientType.CreatedAt, &patientType.UpdatedAt)
}

func (r *patientTypeRepository) Update(ctx context.Context, patientType *domain.PatientType) error {
	const query = `
        UPDATE patient_types SET name=$1, is_active=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		patientType.Name,
		patientType.IsActive,
		patientType.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientTypeRepository) GetByID(ctx context.Context, id string) (*domain.PatientType, error) {
	const query = `
        SELECT id, name, is_active, created_at, updated_at
        FROM patient_types WHERE id=$1`
	var patientType domain.PatientType
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&patientType.ID,
		&patientType.Name,
		&patientType.IsActive,
		&patientType.CreatedAt,
		&patientType.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &patientType, nil
}

func (r *patientTypeRepository) ListActive(ctx context.Context) ([]domain.PatientType, error) {
	const query = `
        SELECT id, name, is_active, created_at, updated_at
        FROM patient_types WHERE is_active = TRUE ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PatientType
	for rows.Next() {
		var patientType domain.PatientType
		if err := rows.Scan(&patientType.ID, &patientType.Name, &patientType.IsActive, &patientType.CreatedAt, &patientType.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, patientType)
	}
	return result, rows.Err()
}

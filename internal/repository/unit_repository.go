package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

// UnitRepository manages hospital unit persistence.
type UnitRepository interface {
	Create(ctx context.Context, unit *domain.Unit) error
	Update(ctx context.Context, unit *domain.Unit) error
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
	ListActive(ctx context.Context) ([]domain.Unit, error)
	ListUnitTypes(ctx context.Context) ([]domain.UnitType, error)
}

type unitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository builds the repository.
func NewUnitRepository(pool *pgxpool.Pool) UnitRepository {
	return &unitRepository{pool: pool}
}

func (r *unitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	const query = `
        INSERT INTO units (unit_type_id, name, description, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		unit.UnitTypeID,
		unit.Name,
		unit.Description,
		unit.IsActive,
	).Scan(&unit.ID, &unit.CreatedAt, &unit.UpdatedAt)
}

func (r *unitRepository) Update(ctx context.Context, unit *domain.Unit) error {
	const query = `
        UPDATE units SET unit_type_id=$1, name=$2, description=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		unit.UnitTypeID,
		unit.Name,
		unit.Description,
		unit.IsActive,
		unit.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *unitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	const query = `
        SELECT id, unit_type_id, name, description, is_active, created_at, updated_at
        FROM units WHERE id=$1`
	var unit domain.Unit
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&unit.ID,
		&unit.UnitTypeID,
		&unit.Name,
		&unit.Description,
		&unit.IsActive,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) ListActive(ctx context.Context) ([]domain.Unit, error) {
	const query = `
        SELECT id, unit_type_id, name, description, is_active, created_at, updated_at
        FROM units WHERE is_active = TRUE ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Unit
	for rows.Next() {
		var unit domain.Unit
		if err := rows.Scan(&unit.ID, &unit.UnitTypeID, &unit.Name, &unit.Description, &unit.IsActive, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, unit)
	}
	return result, rows.Err()
}

func (r *unitRepository) ListUnitTypes(ctx context.Context) ([]domain.UnitType, error) {
	const query = `SELECT id, name, created_at, updated_at FROM unit_types ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UnitType
	for rows.Next() {
		var unitType domain.UnitType
		if err := rows.Scan(&unitType.ID, &unitType.Name, &unitType.CreatedAt, &unitType.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, unitType)
	}
	return result, rows.Err()
}

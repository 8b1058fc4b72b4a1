package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

// SLARuleRepository manages SLA rule persistence. The resolver reads the
// active set; rules themselves are only written through admin CRUD.
type SLARuleRepository interface {
	Create(ctx context.Context, rule *domain.SLARule) error
	Update(ctx context.Context, rule *domain.SLARule) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SLARule, error)
	List(ctx context.Context) ([]domain.SLARule, error)
	ListActive(ctx context.Context) ([]domain.SLARule, error)
}

type slaRuleRepository struct {
	pool *pgxpool.Pool
}

// NewSLARuleRepository builds the repository.
func NewSLARuleRepository(pool *pgxpool.Pool) SLARuleRepository {
	return &slaRuleRepository{pool: pool}
}

const slaRuleColumns = `id, name, unit_type_id, service_category_id, patient_type_id,
               priority_level, response_time_hours, resolution_time_hours,
               escalation_time_hours, business_hours_only, is_active, created_at, updated_at`

func (r *slaRuleRepository) Create(ctx context.Context, rule *domain.SLARule) error {
	const query = `
        INSERT INTO sla_rules (name, unit_type_id, service_category_id, patient_type_id,
            priority_level, response_time_hours, resolution_time_hours,
            escalation_time_hours, business_hours_only, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		rule.Name,
		rule.UnitTypeID,
		rule.ServiceCategoryID,
		rule.PatientTypeID,
		rule.PriorityLevel,
		rule.ResponseTimeHours,
		rule.ResolutionTimeHours,
		rule.EscalationTimeHours,
		rule.BusinessHoursOnly,
		rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *slaRuleRepository) Update(ctx context.Context, rule *domain.SLARule) error {
	const query = `
        UPDATE sla_rules SET name=$1, unit_type_id=$2, service_category_id=$3, patient_type_id=$4,
            priority_level=$5, response_time_hours=$6, resolution_time_hours=$7,
            escalation_time_hours=$8, business_hours_only=$9, is_active=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		rule.Name,
		rule.UnitTypeID,
		rule.ServiceCategoryID,
		rule.PatientTypeID,
		rule.PriorityLevel,
		rule.ResponseTimeHours,
		rule.ResolutionTimeHours,
		rule.EscalationTimeHours,
		rule.BusinessHoursOnly,
		rule.IsActive,
		rule.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slaRuleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sla_rules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slaRuleRepository) GetByID(ctx context.Context, id string) (*domain.SLARule, error) {
	query := `SELECT ` + slaRuleColumns + ` FROM sla_rules WHERE id=$1`
	var rule domain.SLARule
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&rule.ID,
		&rule.Name,
		&rule.UnitTypeID,
		&rule.ServiceCategoryID,
		&rule.PatientTypeID,
		&rule.PriorityLevel,
		&rule.ResponseTimeHours,
		&rule.ResolutionTimeHours,
		&rule.EscalationTimeHours,
		&rule.BusinessHoursOnly,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *slaRuleRepository) List(ctx context.Context) ([]domain.SLARule, error) {
	return r.list(ctx, `SELECT `+slaRuleColumns+` FROM sla_rules ORDER BY id`)
}

func (r *slaRuleRepository) ListActive(ctx context.Context) ([]domain.SLARule, error) {
	return r.list(ctx, `SELECT `+slaRuleColumns+` FROM sla_rules WHERE is_active = TRUE ORDER BY id`)
}

func (r *slaRuleRepository) list(ctx context.Context, query string) ([]domain.SLARule, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SLARule
	for rows.Next() {
		var rule domain.SLARule
		if err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.UnitTypeID,
			&rule.ServiceCategoryID,
			&rule.PatientTypeID,
			&rule.PriorityLevel,
			&rule.ResponseTimeHours,
			&rule.ResolutionTimeHours,
			&rule.EscalationTimeHours,
			&rule.BusinessHoursOnly,
			&rule.IsActive,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}

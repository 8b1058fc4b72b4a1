package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/simrs-labs/complaint-service/internal/auth"
	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/repository"
	apperrors "github.com/simrs-labs/complaint-service/pkg/util/errorutil"
)

// StaffService manages staff accounts.
type StaffService struct {
	staff      repository.StaffRepository
	units      repository.UnitRepository
	bcryptCost int
}

// NewStaffService constructs the service.
func NewStaffService(staff repository.StaffRepository, units repository.UnitRepository, bcryptCost int) *StaffService {
	return &StaffService{staff: staff, units: units, bcryptCost: bcryptCost}
}

// StaffInput describes create/update payloads.
type StaffInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.StaffRole
	UnitID   *string
	Active   bool
}

// CreateStaff registers a new staff account.
func (s *StaffService) CreateStaff(ctx context.Context, input StaffInput) (*domain.StaffMember, error) {
	if err := s.validateInput(ctx, input, true); err != nil {
		return nil, err
	}
	if _, err := s.staff.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	staff := &domain.StaffMember{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         input.Role,
		UnitID:       input.UnitID,
		Active:       input.Active,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaff modifies an existing account. Password changes go through the
// auth service instead.
func (s *StaffService) UpdateStaff(ctx context.Context, id string, input StaffInput) (*domain.StaffMember, error) {
	if err := s.validateInput(ctx, input, false); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	staff.Name = strings.TrimSpace(input.Name)
	staff.Email = strings.ToLower(strings.TrimSpace(input.Email))
	staff.Role = input.Role
	staff.UnitID = input.UnitID
	staff.Active = input.Active
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaff fetches a single account.
func (s *StaffService) GetStaff(ctx context.Context, id string) (*domain.StaffMember, error) {
	return s.staff.GetByID(ctx, id)
}

// ListStaff returns paginated accounts.
func (s *StaffService) ListStaff(ctx context.Context, limit, offset int) ([]domain.StaffMember, error) {
	return s.staff.List(ctx, limit, offset)
}

func (s *StaffService) validateInput(ctx context.Context, input StaffInput, requirePassword bool) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if strings.TrimSpace(input.Email) == "" {
		return apperrors.NewValidationError("email is required", nil)
	}
	if requirePassword && len(input.Password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if input.Role != domain.StaffRoleAgent && input.Role != domain.StaffRoleAdmin {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if input.UnitID != nil {
		if _, err := s.units.GetByID(ctx, *input.UnitID); err != nil {
			return err
		}
	}
	return nil
}

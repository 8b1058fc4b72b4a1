package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/simrs-labs/complaint-service/internal/api/dto"
	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/repository"
	apperrors "github.com/simrs-labs/complaint-service/pkg/util/errorutil"
)

// ReferenceHandler serves the reference data the public submission form needs.
type ReferenceHandler struct {
	units        repository.UnitRepository
	categories   repository.CategoryRepository
	patientTypes repository.PatientTypeRepository
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(units repository.UnitRepository, categories repository.CategoryRepository, patientTypes repository.PatientTypeRepository) *ReferenceHandler {
	return &ReferenceHandler{units: units, categories: categories, patientTypes: patientTypes}
}

// ListUnits GET /reference/units.
func (h *ReferenceHandler) ListUnits(c *fiber.Ctx) error {
	units, err := h.units.ListActive(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UnitResponse, 0, len(units))
	for _, unit := range units {
		items = append(items, dto.UnitResponse{ID: unit.ID, UnitTypeID: unit.UnitTypeID, Name: unit.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListUnitTypes GET /reference/unit-types.
func (h *ReferenceHandler) ListUnitTypes(c *fiber.Ctx) error {
	unitTypes, err := h.units.ListUnitTypes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UnitTypeResponse, 0, len(unitTypes))
	for _, unitType := range unitTypes {
		items = append(items, dto.UnitTypeResponse{ID: unitType.ID, Name: unitType.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListCategories GET /reference/categories.
func (h *ReferenceHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.ListActive(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.CategoryResponse{ID: category.ID, Name: category.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateUnit POST /reference/units (admin).
func (h *ReferenceHandler) CreateUnit(c *fiber.Ctx) error {
	var req dto.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.UnitTypeID) == "" {
		return apperrors.NewValidationError("name and unit_type_id are required", nil)
	}
	unit := &domain.Unit{
		UnitTypeID:  req.UnitTypeID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := h.units.Create(c.Context(), unit); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.UnitResponse{ID: unit.ID, UnitTypeID: unit.UnitTypeID, Name: unit.Name}})
}

// UpdateUnit PUT /reference/units/:id (admin).
func (h *ReferenceHandler) UpdateUnit(c *fiber.Ctx) error {
	unit, err := h.units.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if strings.TrimSpace(req.Name) != "" {
		unit.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.UnitTypeID) != "" {
		unit.UnitTypeID = req.UnitTypeID
	}
	unit.Description = strings.TrimSpace(req.Description)
	unit.IsActive = boolOrDefault(req.IsActive, unit.IsActive)
	if err := h.units.Update(c.Context(), unit); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UnitResponse{ID: unit.ID, UnitTypeID: unit.UnitTypeID, Name: unit.Name}})
}

// CreateCategory POST /reference/categories (admin).
func (h *ReferenceHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	category := &domain.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := h.categories.Create(c.Context(), category); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.CategoryResponse{ID: category.ID, Name: category.Name}})
}

// UpdateCategory PUT /reference/categories/:id (admin).
func (h *ReferenceHandler) UpdateCategory(c *fiber.Ctx) error {
	category, err := h.categories.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if strings.TrimSpace(req.Name) != "" {
		category.Name = strings.TrimSpace(req.Name)
	}
	category.Description = strings.TrimSpace(req.Description)
	category.IsActive = boolOrDefault(req.IsActive, category.IsActive)
	if err := h.categories.Update(c.Context(), category); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CategoryResponse{ID: category.ID, Name: category.Name}})
}

// CreatePatientType POST /reference/patient-types (admin).
func (h *ReferenceHandler) CreatePatientType(c *fiber.Ctx) error {
	var req dto.PatientTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	patientType := &domain.PatientType{
		Name:     strings.TrimSpace(req.Name),
		IsActive: boolOrDefault(req.IsActive, true),
	}
	if err := h.patientTypes.Create(c.Context(), patientType); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.PatientTypeResponse{ID: patientType.ID, Name: patientType.Name}})
}

// UpdatePatientType PUT /reference/patient-types/:id (admin).
func (h *ReferenceHandler) UpdatePatientType(c *fiber.Ctx) error {
	patientType, err := h.patientTypes.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.PatientTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if strings.TrimSpace(req.Name) != "" {
		patientType.Name = strings.TrimSpace(req.Name)
	}
	patientType.IsActive = boolOrDefault(req.IsActive, patientType.IsActive)
	if err := h.patientTypes.Update(c.Context(), patientType); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PatientTypeResponse{ID: patientType.ID, Name: patientType.Name}})
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// ListPatientTypes GET /reference/patient-types.
func (h *ReferenceHandler) ListPatientTypes(c *fiber.Ctx) error {
	patientTypes, err := h.patientTypes.ListActive(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PatientTypeResponse, 0, len(patientTypes))
	for _, patientType := range patientTypes {
		items = append(items, dto.PatientTypeResponse{ID: patientType.ID, Name: patientType.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

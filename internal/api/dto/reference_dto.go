package dto

// UnitRequest creates or updates a hospital unit.
type UnitRequest struct {
	UnitTypeID  string `json:"unit_type_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CategoryRequest creates or updates a complaint category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// PatientTypeRequest creates or updates a patient classification.
type PatientTypeRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// UnitResponse is a selectable hospital unit.
type UnitResponse struct {
	ID         string `json:"id"`
	UnitTypeID string `json:"unit_type_id"`
	Name       string `json:"name"`
}

// UnitTypeResponse groups units for SLA matching.
type UnitTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryResponse is a selectable complaint category.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PatientTypeResponse is a selectable patient classification.
type PatientTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package payroll

import (
	"strings"

	"github.com/corehr/hr-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CYCLE DTOs ==========

type CreateCycleRequest struct {
	Name           string  `json:"name"`
	StartDate      string  `json:"start_date"`  // YYYY-MM-DD
	EndDate        string  `json:"end_date"`    // YYYY-MM-DD
	CutoffDate     string  `json:"cutoff_date"` // YYYY-MM-DD
	PersonInCharge *string `json:"person_in_charge,omitempty"`
}

func (r *CreateCycleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.CutoffDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "cutoff_date", Message: "cutoff_date must be in YYYY-MM-DD format"})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CycleResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	CutoffDate     string  `json:"cutoff_date"`
	Status         string  `json:"status"`
	PersonInCharge *string `json:"person_in_charge,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// GenerateResult reports how many slips a generation run touched.
type GenerateResult struct {
	CycleID string `json:"cycle_id"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
}

// ========== SLIP DTOs ==========

type SlipFilter struct {
	CycleID    *string `json:"cycle_id,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *SlipFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if f.Status != nil {
		validStatuses := []string{string(SlipStatusDraft), string(SlipStatusFinal)}
		if !validator.IsInSlice(strings.ToUpper(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: DRAFT, FINAL"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineItemResponse struct {
	ID          string          `json:"id"`
	ComponentID *string         `json:"component_id,omitempty"`
	Label       string          `json:"label"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

type SlipResponse struct {
	ID              string             `json:"id"`
	CycleID         string             `json:"cycle_id"`
	EmployeeID      string             `json:"employee_id"`
	EmployeeName    *string            `json:"employee_name,omitempty"`
	BaseSalary      decimal.Decimal    `json:"base_salary"`
	TotalEarnings   decimal.Decimal    `json:"total_earnings"`
	TotalDeductions decimal.Decimal    `json:"total_deductions"`
	NetPay          decimal.Decimal    `json:"net_pay"`
	WorkDuration    string             `json:"work_duration"` // HH:MM:SS
	Overtime        string             `json:"overtime"`      // signed ±HH:MM:SS
	Deficit         string             `json:"deficit"`       // signed ±HH:MM:SS
	Status          string             `json:"status"`
	LineItems       []LineItemResponse `json:"line_items,omitempty"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

type ListSlipsResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Slips      []SlipResponse `json:"slips"`
}

// ========== STRUCTURE & COMPONENT DTOs ==========

type StructureItemRequest struct {
	ComponentID string          `json:"component_id"`
	Amount      decimal.Decimal `json:"amount"`
}

type UpsertStructureRequest struct {
	EmployeeID string                 `json:"employee_id"`
	BaseSalary decimal.Decimal        `json:"base_salary"`
	Items      []StructureItemRequest `json:"items"`
}

func (r *UpsertStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary must be non-negative"})
	}
	for i, item := range r.Items {
		if validator.IsEmpty(item.ComponentID) {
			errs = append(errs, validator.ValidationError{
				Field:   "items[" + validator.Itoa(i) + "].component_id",
				Message: "component_id is required",
			})
		}
		if item.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "items[" + validator.Itoa(i) + "].amount",
				Message: "amount must be non-negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StructureResponse struct {
	ID         string                  `json:"id"`
	EmployeeID string                  `json:"employee_id"`
	BaseSalary decimal.Decimal         `json:"base_salary"`
	Items      []StructureItemResponse `json:"items"`
	CreatedAt  string                  `json:"created_at"`
	UpdatedAt  string                  `json:"updated_at"`
}

type StructureItemResponse struct {
	ID            string          `json:"id"`
	ComponentID   string          `json:"component_id"`
	ComponentName *string         `json:"component_name,omitempty"`
	ComponentType *string         `json:"component_type,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

type CreateComponentRequest struct {
	Name string `json:"name"`
	Type string `json:"type"` // "earning" or "deduction"
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	validTypes := []string{string(ComponentTypeEarning), string(ComponentTypeDeduction)}
	if !validator.IsInSlice(strings.ToLower(r.Type), validTypes) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: earning, deduction"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

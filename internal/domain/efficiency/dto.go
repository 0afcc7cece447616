package efficiency

import (
	"github.com/corehr/hr-payroll-go/internal/pkg/validator"
)

// ========== TEMPLATE DTOs ==========

type CreateTemplateRequest struct {
	Department *string `json:"department,omitempty"`
	Title      string  `json:"title"`
	Schema     Schema  `json:"schema"`
	Version    string  `json:"version,omitempty"`
}

func (r *CreateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}

	r.Schema.Normalize()
	if err := r.Schema.Validate(); err != nil {
		if schemaErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, schemaErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TemplateResponse struct {
	ID         string  `json:"id"`
	OrgID      string  `json:"org_id"`
	Department *string `json:"department,omitempty"`
	Title      string  `json:"title"`
	Schema     Schema  `json:"schema"`
	Version    string  `json:"version,omitempty"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// ========== EVALUATION DTOs ==========

// SubmitEvaluationRequest carries a raw submission payload in either accepted
// shape; scoring flattens it before computing totals.
type SubmitEvaluationRequest struct {
	TemplateID string         `json:"template_id"`
	EmployeeID string         `json:"employee_id"`
	Department *string        `json:"department,omitempty"`
	Data       map[string]any `json:"data"`
	Status     *string        `json:"status,omitempty"` // draft or submitted; defaults to submitted
}

func (r *SubmitEvaluationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TemplateID) {
		errs = append(errs, validator.ValidationError{Field: "template_id", Message: "template_id is required"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{StatusDraft, StatusSubmitted}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: draft, submitted"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEvaluationStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateEvaluationStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{StatusDraft, StatusSubmitted, StatusReviewed}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: draft, submitted, reviewed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EvaluationResponse struct {
	ID              string         `json:"id"`
	TemplateID      string         `json:"template_id"`
	EmployeeID      string         `json:"employee_id"`
	EmployeeName    *string        `json:"employee_name,omitempty"`
	Department      *string        `json:"department,omitempty"`
	EvaluatorID     *string        `json:"evaluator_id,omitempty"`
	Data            map[string]any `json:"data"`
	TotalAchieved   float64        `json:"total_achieved"`
	TotalPossible   float64        `json:"total_possible"`
	TotalEfficiency float64        `json:"total_efficiency"`
	Status          string         `json:"status"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
}

type EvaluationFilter struct {
	TemplateID *string `json:"template_id,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EvaluationFilter) Validate() error {
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

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{StatusDraft, StatusSubmitted, StatusReviewed}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: draft, submitted, reviewed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEvaluationsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Evaluations []EvaluationResponse `json:"evaluations"`
}

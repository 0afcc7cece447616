package efficiency

import (
	"time"
)

// Evaluation statuses
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
)

// Template is a form definition created by HR; the schema drives both the
// frontend form builder and server-side scoring.
type Template struct {
	ID         string
	OrgID      string
	Department *string
	Title      string
	Schema     Schema
	Version    string
	IsActive   bool
	CreatedBy  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Evaluation is one scored submission against a template. The raw payload is
// kept in Data for auditing; the totals are always server-computed.
type Evaluation struct {
	ID              string
	TemplateID      string
	EmployeeID      string
	Department      *string
	EvaluatorID     *string
	Data            map[string]any
	TotalAchieved   float64
	TotalPossible   float64
	TotalEfficiency float64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
}

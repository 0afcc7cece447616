package efficiency

import (
	"context"
)

// EfficiencyService defines business logic for templates and evaluations
type EfficiencyService interface {
	// Templates
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error)
	GetTemplate(ctx context.Context, id string) (TemplateResponse, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]TemplateResponse, error)

	// SubmitEvaluation flattens the payload, scores it against the template
	// schema and persists a new evaluation carrying the computed summary
	SubmitEvaluation(ctx context.Context, req SubmitEvaluationRequest) (EvaluationResponse, error)

	GetEvaluation(ctx context.Context, id string) (EvaluationResponse, error)
	ListEvaluations(ctx context.Context, filter EvaluationFilter) (ListEvaluationsResponse, error)

	// UpdateEvaluationStatus moves an evaluation along
	// draft -> submitted -> reviewed; backward moves fail
	UpdateEvaluationStatus(ctx context.Context, req UpdateEvaluationStatusRequest) (EvaluationResponse, error)
}

package efficiency

import (
	"context"
)

// EfficiencyRepository defines data access for templates and evaluations.
type EfficiencyRepository interface {
	// Templates
	CreateTemplate(ctx context.Context, template Template) (Template, error)
	GetTemplateByID(ctx context.Context, id string) (Template, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error)
	UpdateTemplate(ctx context.Context, template Template) error

	// Evaluations
	CreateEvaluation(ctx context.Context, evaluation Evaluation) (Evaluation, error)
	GetEvaluationByID(ctx context.Context, id string) (Evaluation, error)
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]Evaluation, int64, error)
	UpdateEvaluationStatus(ctx context.Context, id string, status string) error
}

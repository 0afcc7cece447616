package efficiency

import (
	"context"
	"math"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/audit"
	"github.com/corehr/hr-payroll-go/internal/domain/efficiency"
	"github.com/corehr/hr-payroll-go/internal/domain/employee"
	"github.com/corehr/hr-payroll-go/internal/domain/policy"
	"github.com/go-chi/jwtauth/v5"
)

// statusRank orders the evaluation lifecycle; transitions only move forward.
var statusRank = map[string]int{
	efficiency.StatusDraft:     0,
	efficiency.StatusSubmitted: 1,
	efficiency.StatusReviewed:  2,
}

type EfficiencyServiceImpl struct {
	efficiency.EfficiencyRepository
	employeeRepo employee.EmployeeRepository
	auditService audit.AuditService
}

func NewEfficiencyService(
	efficiencyRepo efficiency.EfficiencyRepository,
	employeeRepo employee.EmployeeRepository,
	auditService audit.AuditService,
) efficiency.EfficiencyService {
	return &EfficiencyServiceImpl{
		EfficiencyRepository: efficiencyRepo,
		employeeRepo:         employeeRepo,
		auditService:         auditService,
	}
}

// ========== TEMPLATES ==========

func (s *EfficiencyServiceImpl) CreateTemplate(ctx context.Context, req efficiency.CreateTemplateRequest) (efficiency.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return efficiency.TemplateResponse{}, err
	}

	template := efficiency.Template{
		OrgID:      policy.DefaultOrgID,
		Department: req.Department,
		Title:      req.Title,
		Schema:     req.Schema,
		Version:    req.Version,
		IsActive:   true,
		CreatedBy:  actorFromContext(ctx),
	}

	stored, err := s.EfficiencyRepository.CreateTemplate(ctx, template)
	if err != nil {
		return efficiency.TemplateResponse{}, err
	}
	return mapTemplateToResponse(stored), nil
}

func (s *EfficiencyServiceImpl) GetTemplate(ctx context.Context, id string) (efficiency.TemplateResponse, error) {
	template, err := s.EfficiencyRepository.GetTemplateByID(ctx, id)
	if err != nil {
		return efficiency.TemplateResponse{}, err
	}
	return mapTemplateToResponse(template), nil
}

func (s *EfficiencyServiceImpl) ListTemplates(ctx context.Context, activeOnly bool) ([]efficiency.TemplateResponse, error) {
	templates, err := s.EfficiencyRepository.ListTemplates(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]efficiency.TemplateResponse, 0, len(templates))
	for _, template := range templates {
		responses = append(responses, mapTemplateToResponse(template))
	}
	return responses, nil
}

// ========== EVALUATIONS ==========

func (s *EfficiencyServiceImpl) SubmitEvaluation(ctx context.Context, req efficiency.SubmitEvaluationRequest) (efficiency.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return efficiency.EvaluationResponse{}, err
	}

	template, err := s.EfficiencyRepository.GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return efficiency.EvaluationResponse{}, err
	}
	if !template.IsActive {
		return efficiency.EvaluationResponse{}, efficiency.ErrTemplateInactive
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return efficiency.EvaluationResponse{}, err
	}

	schema := template.Schema
	schema.Normalize()

	answers := efficiency.FlattenAnswers(req.Data)
	summary := efficiency.Score(schema.PerformanceMetrics, answers)
	data := efficiency.EnrichData(req.Data, schema.Title, summary)

	status := efficiency.StatusSubmitted
	if req.Status != nil {
		status = *req.Status
	}

	department := req.Department
	if department == nil {
		department = template.Department
	}

	evaluation := efficiency.Evaluation{
		TemplateID:      template.ID,
		EmployeeID:      req.EmployeeID,
		Department:      department,
		EvaluatorID:     actorFromContext(ctx),
		Data:            data,
		TotalAchieved:   summary.TotalAchieved,
		TotalPossible:   summary.TotalPossible,
		TotalEfficiency: summary.TotalEfficiency,
		Status:          status,
	}

	stored, err := s.EfficiencyRepository.CreateEvaluation(ctx, evaluation)
	if err != nil {
		return efficiency.EvaluationResponse{}, err
	}

	s.auditService.Log(ctx, audit.ActionEvaluationCreated, evaluation.EvaluatorID,
		"efficiency evaluation created for employee "+req.EmployeeID,
		nil,
		map[string]any{
			"total_achieved":   summary.TotalAchieved,
			"total_possible":   summary.TotalPossible,
			"total_efficiency": summary.TotalEfficiency,
			"status":           status,
		})

	return mapEvaluationToResponse(stored), nil
}

func (s *EfficiencyServiceImpl) GetEvaluation(ctx context.Context, id string) (efficiency.EvaluationResponse, error) {
	evaluation, err := s.EfficiencyRepository.GetEvaluationByID(ctx, id)
	if err != nil {
		return efficiency.EvaluationResponse{}, err
	}
	return mapEvaluationToResponse(evaluation), nil
}

func (s *EfficiencyServiceImpl) ListEvaluations(ctx context.Context, filter efficiency.EvaluationFilter) (efficiency.ListEvaluationsResponse, error) {
	if err := filter.Validate(); err != nil {
		return efficiency.ListEvaluationsResponse{}, err
	}

	evaluations, total, err := s.EfficiencyRepository.ListEvaluations(ctx, filter)
	if err != nil {
		return efficiency.ListEvaluationsResponse{}, err
	}

	responses := make([]efficiency.EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, mapEvaluationToResponse(evaluation))
	}

	return efficiency.ListEvaluationsResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Evaluations: responses,
	}, nil
}

func (s *EfficiencyServiceImpl) UpdateEvaluationStatus(ctx context.Context, req efficiency.UpdateEvaluationStatusRequest) (efficiency.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return efficiency.EvaluationResponse{}, err
	}

	evaluation, err := s.EfficiencyRepository.GetEvaluationByID(ctx, req.ID)
	if err != nil {
		return efficiency.EvaluationResponse{}, err
	}

	if statusRank[req.Status] <= statusRank[evaluation.Status] && req.Status != evaluation.Status {
		return efficiency.EvaluationResponse{}, efficiency.ErrInvalidStatusChange
	}

	if req.Status != evaluation.Status {
		if err := s.EfficiencyRepository.UpdateEvaluationStatus(ctx, evaluation.ID, req.Status); err != nil {
			return efficiency.EvaluationResponse{}, err
		}
		evaluation.Status = req.Status
	}
	return mapEvaluationToResponse(evaluation), nil
}

// ========== MAPPERS ==========

func mapTemplateToResponse(template efficiency.Template) efficiency.TemplateResponse {
	return efficiency.TemplateResponse{
		ID:         template.ID,
		OrgID:      template.OrgID,
		Department: template.Department,
		Title:      template.Title,
		Schema:     template.Schema,
		Version:    template.Version,
		IsActive:   template.IsActive,
		CreatedAt:  template.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  template.UpdatedAt.Format(time.RFC3339),
	}
}

func mapEvaluationToResponse(evaluation efficiency.Evaluation) efficiency.EvaluationResponse {
	return efficiency.EvaluationResponse{
		ID:              evaluation.ID,
		TemplateID:      evaluation.TemplateID,
		EmployeeID:      evaluation.EmployeeID,
		EmployeeName:    evaluation.EmployeeName,
		Department:      evaluation.Department,
		EvaluatorID:     evaluation.EvaluatorID,
		Data:            evaluation.Data,
		TotalAchieved:   evaluation.TotalAchieved,
		TotalPossible:   evaluation.TotalPossible,
		TotalEfficiency: evaluation.TotalEfficiency,
		Status:          evaluation.Status,
		CreatedAt:       evaluation.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       evaluation.UpdatedAt.Format(time.RFC3339),
	}
}

func actorFromContext(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		return &employeeID
	}
	return nil
}

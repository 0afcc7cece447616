package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/efficiency"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type efficiencyRepository struct {
	db *database.DB
}

// ========== TEMPLATES ==========

const templateColumns = `
	t.id, t.org_id, t.department, t.title, t.schema, t.version,
	t.is_active, t.created_by, t.created_at, t.updated_at`

func scanTemplate(row pgx.Row) (efficiency.Template, error) {
	var template efficiency.Template
	err := row.Scan(
		&template.ID, &template.OrgID, &template.Department, &template.Title,
		&template.Schema, &template.Version,
		&template.IsActive, &template.CreatedBy, &template.CreatedAt, &template.UpdatedAt,
	)
	return template, err
}

// CreateTemplate implements efficiency.EfficiencyRepository.
func (e *efficiencyRepository) CreateTemplate(ctx context.Context, template efficiency.Template) (efficiency.Template, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO efficiency_templates (
			org_id, department, title, schema, version, is_active, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		template.OrgID,
		template.Department,
		template.Title,
		template.Schema,
		template.Version,
		template.IsActive,
		template.CreatedBy,
	).Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt)

	if err != nil {
		return efficiency.Template{}, fmt.Errorf("failed to create efficiency template: %w", err)
	}

	return template, nil
}

// GetTemplateByID implements efficiency.EfficiencyRepository.
func (e *efficiencyRepository) GetTemplateByID(ctx context.Context, id string) (efficiency.Template, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT` + templateColumns + `
		FROM efficiency_templates t
		WHERE t.id = $1
	`

	template, err := scanTemplate(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return efficiency.Template{}, efficiency.ErrTemplateNotFound
		}
		return efficiency.Template{}, fmt.Errorf("failed to get efficiency template by ID: %w", err)
	}

	return template, nil
}

// ListTemplates implements efficiency.EfficiencyRepository.
func (e *efficiencyRepository) ListTemplates(ctx context.Context, activeOnly bool) ([]efficiency.Template, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT` + templateColumns + `
		FROM efficiency_templates t
		WHERE ($1 = FALSE OR t.is_active = TRUE)
		ORDER BY t.created_at DESC
	`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query efficiency templates: %w", err)
	}
	defer rows.Close()

	var templates []efficiency.Template
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan efficiency template: %w", err)
		}
		templates = append(templates, template)
	}

	return templates, nil
}

// UpdateTemplate implements efficiency.EfficiencyRepository.
func (e *efficiencyRepository) UpdateTemplate(ctx context.Context, template efficiency.Template) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE efficiency_templates SET
			department = $1,
			title = $2,
			schema = $3,
			version = $4,
			is_active = $5,
			updated_at = $6
		WHERE id = $7
	`

	commandTag, err := q.Exec(ctx, query,
		template.Department,
		template.Title,
		template.Schema,
		template.Version,
		template.IsActive,
		time.Now(),
		template.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update efficiency template: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return efficiency.ErrTemplateNotFound
	}

	return nil
}

// ========== EVALUATIONS ==========

const evaluationColumns = `
	v.id, v.template_id, v.employee_id, v.department, v.evaluator_id, v.data,
	v.total_achieved, v.total_possible, v.total_efficiency, v.status,
	v.created_at, v.updated_at`

func scanEvaluation(row pgx.Row, withEmployee bool) (efficiency.Evaluation, error) {
	var evaluation efficiency.Evaluation

	dest := []interface{}{
		&evaluation.ID, &evaluation.TemplateID, &evaluation.EmployeeID,
		&evaluation.Department, &evaluation.EvaluatorID, &evaluation.Data,
		&evaluation.TotalAchieved, &evaluation.TotalPossible, &evaluation.TotalEfficiency,
		&evaluation.Status, &evaluation.CreatedAt, &evaluation.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &evaluation.EmployeeName)
	}

	err := row.Scan(dest...)
	return evaluation, err
}

// CreateEvaluation implements efficiency.EfficiencyRepository.
func (e *efficiencyRepository) CreateEvaluation(ctx context.Context, evaluation efficiency.Evaluation) (efficiency.Evaluation, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO efficiency_evaluations (
			template_id, employee_id, department, evaluator_id, data,
			total_achieved, total_possible, total_efficiency, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		evaluation.TemplateID,
		evaluation.EmployeeID,
		evaluation.Department,
		evaluation.EvaluatorID,
		evaluation.Data,
		evaluation.TotalAchieved,
		evaluation.TotalPossible,
		evaluation.TotalEfficiency,
		evaluation.Status,
	).Scan(&evaluation.ID, &evaluation.CreatedAt, &evaluation.UpdatedAt)

	if err != nil {
		return efficiency.Evaluation{}, fmt.Errorf("failed to create efficiency evaluation: %w", err)
	}

	return evaluation, nil
}

// GetEvaluationByID implements efficiency.EfficiencyRepository.
func (e *efficiencyRepository) GetEvaluationByID(ctx context.Context, id string) (efficiency.Evaluation, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT` + evaluationColumns + `,
			   e.full_name AS employee_name
		FROM efficiency_evaluations v
		LEFT JOIN employees e ON e.id = v.employee_id
		WHERE v.id = $1
	`

	evaluation, err := scanEvaluation(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return efficiency.Evaluation{}, efficiency.ErrEvaluationNotFound
		}
		return efficiency.Evaluation{}, fmt.Errorf("failed to get efficiency evaluation by ID: %w", err)
	}

	return evaluation, nil
}

// ListEvaluations implements efficiency.EfficiencyRepository.
func (e *efficiencyRepository) ListEvaluations(ctx context.Context, filter efficiency.EvaluationFilter) ([]efficiency.Evaluation, int64, error) {
	q := GetQuerier(ctx, e.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.TemplateID != nil && *filter.TemplateID != "" {
		baseWhere += fmt.Sprintf(" AND v.template_id = $%d", argIdx)
		args = append(args, *filter.TemplateID)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND v.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND v.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM efficiency_evaluations v WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count efficiency evaluations: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT`+evaluationColumns+`,
			   e.full_name AS employee_name
		FROM efficiency_evaluations v
		LEFT JOIN employees e ON e.id = v.employee_id
		WHERE %s
		ORDER BY v.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query efficiency evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []efficiency.Evaluation
	for rows.Next() {
		evaluation, err := scanEvaluation(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan efficiency evaluation: %w", err)
		}
		evaluations = append(evaluations, evaluation)
	}

	return evaluations, total, nil
}

// UpdateEvaluationStatus implements efficiency.EfficiencyRepository.
func (e *efficiencyRepository) UpdateEvaluationStatus(ctx context.Context, id string, status string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE efficiency_evaluations
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update efficiency evaluation status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return efficiency.ErrEvaluationNotFound
	}

	return nil
}

func NewEfficiencyRepository(db *database.DB) efficiency.EfficiencyRepository {
	return &efficiencyRepository{db: db}
}

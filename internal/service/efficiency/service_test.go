package efficiency

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/audit"
	"github.com/corehr/hr-payroll-go/internal/domain/efficiency"
	"github.com/corehr/hr-payroll-go/internal/domain/employee"
	"github.com/corehr/hr-payroll-go/internal/domain/policy"
	auditService "github.com/corehr/hr-payroll-go/internal/service/audit"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== FAKES ==========

type fakeEfficiencyRepo struct {
	templates     map[string]efficiency.Template
	evaluations   map[string]efficiency.Evaluation
	statusUpdates int
}

func newFakeEfficiencyRepo() *fakeEfficiencyRepo {
	return &fakeEfficiencyRepo{
		templates:   make(map[string]efficiency.Template),
		evaluations: make(map[string]efficiency.Evaluation),
	}
}

func (r *fakeEfficiencyRepo) CreateTemplate(_ context.Context, template efficiency.Template) (efficiency.Template, error) {
	template.ID = uuid.NewString()
	template.CreatedAt = time.Now().UTC()
	template.UpdatedAt = template.CreatedAt
	r.templates[template.ID] = template
	return template, nil
}

func (r *fakeEfficiencyRepo) GetTemplateByID(_ context.Context, id string) (efficiency.Template, error) {
	template, ok := r.templates[id]
	if !ok {
		return efficiency.Template{}, efficiency.ErrTemplateNotFound
	}
	return template, nil
}

func (r *fakeEfficiencyRepo) ListTemplates(_ context.Context, activeOnly bool) ([]efficiency.Template, error) {
	var out []efficiency.Template
	for _, template := range r.templates {
		if activeOnly && !template.IsActive {
			continue
		}
		out = append(out, template)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeEfficiencyRepo) UpdateTemplate(_ context.Context, template efficiency.Template) error {
	if _, ok := r.templates[template.ID]; !ok {
		return efficiency.ErrTemplateNotFound
	}
	r.templates[template.ID] = template
	return nil
}

func (r *fakeEfficiencyRepo) CreateEvaluation(_ context.Context, evaluation efficiency.Evaluation) (efficiency.Evaluation, error) {
	evaluation.ID = uuid.NewString()
	evaluation.CreatedAt = time.Now().UTC()
	evaluation.UpdatedAt = evaluation.CreatedAt
	r.evaluations[evaluation.ID] = evaluation
	return evaluation, nil
}

func (r *fakeEfficiencyRepo) GetEvaluationByID(_ context.Context, id string) (efficiency.Evaluation, error) {
	evaluation, ok := r.evaluations[id]
	if !ok {
		return efficiency.Evaluation{}, efficiency.ErrEvaluationNotFound
	}
	return evaluation, nil
}

func (r *fakeEfficiencyRepo) ListEvaluations(_ context.Context, filter efficiency.EvaluationFilter) ([]efficiency.Evaluation, int64, error) {
	var out []efficiency.Evaluation
	for _, evaluation := range r.evaluations {
		if filter.TemplateID != nil && evaluation.TemplateID != *filter.TemplateID {
			continue
		}
		if filter.EmployeeID != nil && evaluation.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && evaluation.Status != *filter.Status {
			continue
		}
		out = append(out, evaluation)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, int64(len(out)), nil
}

func (r *fakeEfficiencyRepo) UpdateEvaluationStatus(_ context.Context, id string, status string) error {
	evaluation, ok := r.evaluations[id]
	if !ok {
		return efficiency.ErrEvaluationNotFound
	}
	evaluation.Status = status
	r.evaluations[id] = evaluation
	r.statusUpdates++
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(ids ...string) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, id := range ids {
		r.employees[id] = employee.Employee{
			ID:       id,
			FullName: "Employee " + id,
			HireDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Active:   true,
		}
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByDeviceToken(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEmployeeRepo) ListDirectReports(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) ListByOffice(_ context.Context, _ string) ([]employee.Employee, error) {
	return r.ListActive(context.Background())
}

type fakeAuditRepo struct {
	entries []audit.Entry
}

func (r *fakeAuditRepo) Create(_ context.Context, entry audit.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _ *string, _ int) ([]audit.Entry, error) {
	return r.entries, nil
}

// ========== HELPERS ==========

var testAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, employeeID string, roles ...string) context.Context {
	t.Helper()
	claims := map[string]interface{}{
		"employee_id": employeeID,
		"type":        "access",
	}
	if len(roles) > 0 {
		claims["roles"] = roles
	}
	token, _, err := testAuth.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type testEnv struct {
	service efficiency.EfficiencyService
	repo    *fakeEfficiencyRepo
	audits  *fakeAuditRepo
}

func newTestEnv(employeeIDs ...string) testEnv {
	repo := newFakeEfficiencyRepo()
	audits := &fakeAuditRepo{}
	svc := NewEfficiencyService(repo, newFakeEmployeeRepo(employeeIDs...), auditService.NewAuditService(audits))
	return testEnv{service: svc, repo: repo, audits: audits}
}

func floatPtr(f float64) *float64 { return &f }

// reviewSchema has one weighted number metric and one pointed dropdown.
func reviewSchema() efficiency.Schema {
	return efficiency.Schema{
		Title: "Quarterly Review",
		PerformanceMetrics: []efficiency.Metric{
			{Name: "Code Quality", Type: "Number", Weight: floatPtr(40)},
			{
				Name: "Delivery",
				Type: "dropdown",
				Options: []efficiency.Option{
					{Label: "Excellent", Point: 30},
					{Label: "Good", Point: 20},
					{Label: "Poor", Point: 10},
				},
			},
		},
	}
}

func createReviewTemplate(t *testing.T, env testEnv) efficiency.TemplateResponse {
	t.Helper()
	template, err := env.service.CreateTemplate(authedContext(t, "hr-1", "hr"), efficiency.CreateTemplateRequest{
		Title:  "Quarterly Review",
		Schema: reviewSchema(),
	})
	require.NoError(t, err)
	return template
}

// ========== TESTS ==========

func TestCreateTemplateNormalizesSchema(t *testing.T) {
	env := newTestEnv()

	template := createReviewTemplate(t, env)

	assert.Equal(t, policy.DefaultOrgID, template.OrgID)
	assert.True(t, template.IsActive)
	require.Len(t, template.Schema.PerformanceMetrics, 2)
	assert.Equal(t, "code-quality", template.Schema.PerformanceMetrics[0].ID)
	assert.Equal(t, "number", template.Schema.PerformanceMetrics[0].Type)
	assert.Equal(t, "delivery", template.Schema.PerformanceMetrics[1].ID)

	stored := env.repo.templates[template.ID]
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, "hr-1", *stored.CreatedBy)
}

func TestCreateTemplateRejectsInvalidSchema(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.CreateTemplate(context.Background(), efficiency.CreateTemplateRequest{
		Title: "Broken",
		Schema: efficiency.Schema{
			Title: "Broken",
			PerformanceMetrics: []efficiency.Metric{
				{Name: "Scale", Type: "slider"},
			},
		},
	})
	assert.Error(t, err)
}

func TestSubmitEvaluationScoresAnswers(t *testing.T) {
	env := newTestEnv("emp-1")
	template := createReviewTemplate(t, env)

	resp, err := env.service.SubmitEvaluation(authedContext(t, "mgr-1", "line_manager"), efficiency.SubmitEvaluationRequest{
		TemplateID: template.ID,
		EmployeeID: "emp-1",
		Data: map[string]any{
			"answers": map[string]any{
				"code-quality": 35,
				"delivery":     "Good",
			},
		},
	})
	require.NoError(t, err)

	// 35 of 40 on the number metric plus Good (20) of Excellent (30) on the
	// dropdown: 55 / 70 = 78.57%.
	assert.Equal(t, 55.0, resp.TotalAchieved)
	assert.Equal(t, 70.0, resp.TotalPossible)
	assert.Equal(t, 78.57, resp.TotalEfficiency)
	assert.Equal(t, efficiency.StatusSubmitted, resp.Status)
	require.NotNil(t, resp.EvaluatorID)
	assert.Equal(t, "mgr-1", *resp.EvaluatorID)

	summary, ok := resp.Data["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 55.0, summary["totalAchieved"])
	assert.Equal(t, 70.0, summary["totalPossible"])
	assert.Equal(t, "Quarterly Review", resp.Data["title"])

	require.Len(t, env.audits.entries, 1)
	assert.Equal(t, audit.ActionEvaluationCreated, env.audits.entries[0].Action)
}

func TestSubmitEvaluationClampsNumberAnswers(t *testing.T) {
	env := newTestEnv("emp-1")
	template := createReviewTemplate(t, env)

	resp, err := env.service.SubmitEvaluation(context.Background(), efficiency.SubmitEvaluationRequest{
		TemplateID: template.ID,
		EmployeeID: "emp-1",
		Data: map[string]any{
			"answers": map[string]any{
				"code-quality": 90,
				"delivery":     "30 - Excellent",
			},
		},
	})
	require.NoError(t, err)

	// The number answer caps at its weight; the dropdown answer resolves by
	// the leading numeral before any label match.
	assert.Equal(t, 70.0, resp.TotalAchieved)
	assert.Equal(t, 100.0, resp.TotalEfficiency)
}

func TestSubmitEvaluationDraftStatus(t *testing.T) {
	env := newTestEnv("emp-1")
	template := createReviewTemplate(t, env)

	draft := efficiency.StatusDraft
	resp, err := env.service.SubmitEvaluation(context.Background(), efficiency.SubmitEvaluationRequest{
		TemplateID: template.ID,
		EmployeeID: "emp-1",
		Data:       map[string]any{},
		Status:     &draft,
	})
	require.NoError(t, err)
	assert.Equal(t, efficiency.StatusDraft, resp.Status)
}

func TestSubmitEvaluationInactiveTemplate(t *testing.T) {
	env := newTestEnv("emp-1")
	template := createReviewTemplate(t, env)

	stored := env.repo.templates[template.ID]
	stored.IsActive = false
	env.repo.templates[template.ID] = stored

	_, err := env.service.SubmitEvaluation(context.Background(), efficiency.SubmitEvaluationRequest{
		TemplateID: template.ID,
		EmployeeID: "emp-1",
		Data:       map[string]any{},
	})
	assert.ErrorIs(t, err, efficiency.ErrTemplateInactive)
}

func TestSubmitEvaluationUnknownEmployee(t *testing.T) {
	env := newTestEnv()
	template := createReviewTemplate(t, env)

	_, err := env.service.SubmitEvaluation(context.Background(), efficiency.SubmitEvaluationRequest{
		TemplateID: template.ID,
		EmployeeID: "ghost",
		Data:       map[string]any{},
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateEvaluationStatus(t *testing.T) {
	env := newTestEnv("emp-1")
	template := createReviewTemplate(t, env)

	resp, err := env.service.SubmitEvaluation(context.Background(), efficiency.SubmitEvaluationRequest{
		TemplateID: template.ID,
		EmployeeID: "emp-1",
		Data:       map[string]any{},
	})
	require.NoError(t, err)

	reviewed, err := env.service.UpdateEvaluationStatus(context.Background(), efficiency.UpdateEvaluationStatusRequest{
		ID:     resp.ID,
		Status: efficiency.StatusReviewed,
	})
	require.NoError(t, err)
	assert.Equal(t, efficiency.StatusReviewed, reviewed.Status)

	_, err = env.service.UpdateEvaluationStatus(context.Background(), efficiency.UpdateEvaluationStatusRequest{
		ID:     resp.ID,
		Status: efficiency.StatusSubmitted,
	})
	assert.ErrorIs(t, err, efficiency.ErrInvalidStatusChange)
}

func TestUpdateEvaluationStatusSameStatusIsNoOp(t *testing.T) {
	env := newTestEnv("emp-1")
	template := createReviewTemplate(t, env)

	resp, err := env.service.SubmitEvaluation(context.Background(), efficiency.SubmitEvaluationRequest{
		TemplateID: template.ID,
		EmployeeID: "emp-1",
		Data:       map[string]any{},
	})
	require.NoError(t, err)

	same, err := env.service.UpdateEvaluationStatus(context.Background(), efficiency.UpdateEvaluationStatusRequest{
		ID:     resp.ID,
		Status: efficiency.StatusSubmitted,
	})
	require.NoError(t, err)
	assert.Equal(t, efficiency.StatusSubmitted, same.Status)
	assert.Zero(t, env.repo.statusUpdates)
}

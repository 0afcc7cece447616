package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/corehr/hr-payroll-go/internal/domain/efficiency"
	"github.com/corehr/hr-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EfficiencyHandler interface {
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	GetTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	SubmitEvaluation(w http.ResponseWriter, r *http.Request)
	GetEvaluation(w http.ResponseWriter, r *http.Request)
	ListEvaluations(w http.ResponseWriter, r *http.Request)
	UpdateEvaluationStatus(w http.ResponseWriter, r *http.Request)
}

type efficiencyHandlerImpl struct {
	efficiencyService efficiency.EfficiencyService
}

func NewEfficiencyHandler(efficiencyService efficiency.EfficiencyService) EfficiencyHandler {
	return &efficiencyHandlerImpl{
		efficiencyService: efficiencyService,
	}
}

// CreateTemplate implements EfficiencyHandler.
func (h *efficiencyHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req efficiency.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.efficiencyService.CreateTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Efficiency template created", result)
}

// GetTemplate implements EfficiencyHandler.
func (h *efficiencyHandlerImpl) GetTemplate(w http.ResponseWriter, r *http.Request) {
	result, err := h.efficiencyService.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTemplates implements EfficiencyHandler.
func (h *efficiencyHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.efficiencyService.ListTemplates(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitEvaluation implements EfficiencyHandler.
func (h *efficiencyHandlerImpl) SubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	var req efficiency.SubmitEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.efficiencyService.SubmitEvaluation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Evaluation submitted", result)
}

// GetEvaluation implements EfficiencyHandler.
func (h *efficiencyHandlerImpl) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	result, err := h.efficiencyService.GetEvaluation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEvaluations implements EfficiencyHandler.
func (h *efficiencyHandlerImpl) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := efficiency.EvaluationFilter{
		TemplateID: queryParam(q.Get("template_id")),
		EmployeeID: queryParam(q.Get("employee_id")),
		Status:     queryParam(q.Get("status")),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	result, err := h.efficiencyService.ListEvaluations(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Evaluations, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// UpdateEvaluationStatus implements EfficiencyHandler.
func (h *efficiencyHandlerImpl) UpdateEvaluationStatus(w http.ResponseWriter, r *http.Request) {
	var req efficiency.UpdateEvaluationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.efficiencyService.UpdateEvaluationStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Evaluation status updated", result)
}

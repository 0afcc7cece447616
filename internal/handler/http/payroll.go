package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/corehr/hr-payroll-go/internal/domain/payroll"
	"github.com/corehr/hr-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CreateCycle(w http.ResponseWriter, r *http.Request)
	ListCycles(w http.ResponseWriter, r *http.Request)
	GetCycle(w http.ResponseWriter, r *http.Request)
	EnsureCurrentCycle(w http.ResponseWriter, r *http.Request)
	RunCycle(w http.ResponseWriter, r *http.Request)
	ListSlips(w http.ResponseWriter, r *http.Request)
	GetSlip(w http.ResponseWriter, r *http.Request)
	FinalizeSlip(w http.ResponseWriter, r *http.Request)
	UpsertStructure(w http.ResponseWriter, r *http.Request)
	GetStructureByEmployee(w http.ResponseWriter, r *http.Request)
	CreateComponent(w http.ResponseWriter, r *http.Request)
	ListComponents(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// CreateCycle implements PayrollHandler.
func (h *payrollHandlerImpl) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.CreateCycle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay cycle created", result)
}

// ListCycles implements PayrollHandler.
func (h *payrollHandlerImpl) ListCycles(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListCycles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCycle implements PayrollHandler.
func (h *payrollHandlerImpl) GetCycle(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetCycle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EnsureCurrentCycle implements PayrollHandler.
func (h *payrollHandlerImpl) EnsureCurrentCycle(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.EnsureCurrentMonthCycle(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Current month cycle ready", result)
}

// RunCycle implements PayrollHandler.
func (h *payrollHandlerImpl) RunCycle(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GenerateForCycle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll generation complete", result)
}

// ListSlips implements PayrollHandler.
func (h *payrollHandlerImpl) ListSlips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := payroll.SlipFilter{
		CycleID:    queryParam(q.Get("cycle_id")),
		EmployeeID: queryParam(q.Get("employee_id")),
		Status:     queryParam(q.Get("status")),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	result, err := h.payrollService.ListSlips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Slips, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetSlip implements PayrollHandler.
func (h *payrollHandlerImpl) GetSlip(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetSlip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// FinalizeSlip implements PayrollHandler.
func (h *payrollHandlerImpl) FinalizeSlip(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.FinalizeSlip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll slip finalized", result)
}

// UpsertStructure implements PayrollHandler.
func (h *payrollHandlerImpl) UpsertStructure(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.UpsertStructure(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure saved", result)
}

// GetStructureByEmployee implements PayrollHandler.
func (h *payrollHandlerImpl) GetStructureByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetStructureByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateComponent implements PayrollHandler.
func (h *payrollHandlerImpl) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.CreateComponent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay component created", result)
}

// ListComponents implements PayrollHandler.
func (h *payrollHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.payrollService.ListComponents(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/corehr/hr-payroll-go/internal/domain/policy"
	"github.com/corehr/hr-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PolicyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Put(w http.ResponseWriter, r *http.Request)
	PutSection(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyService policy.PolicyService
}

func NewPolicyHandler(policyService policy.PolicyService) PolicyHandler {
	return &policyHandlerImpl{
		policyService: policyService,
	}
}

// Get implements PolicyHandler.
func (h *policyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.policyService.Get(r.Context(), policy.DefaultOrgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Put implements PolicyHandler.
func (h *policyHandlerImpl) Put(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.policyService.Put(r.Context(), policy.DefaultOrgID, doc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Policy updated", result)
}

// PutSection implements PolicyHandler.
func (h *policyHandlerImpl) PutSection(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	section := chi.URLParam(r, "section")
	result, err := h.policyService.PutSection(r.Context(), policy.DefaultOrgID, section, doc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Policy section updated", result)
}

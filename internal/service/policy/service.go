package policy

import (
	"context"

	"github.com/corehr/hr-payroll-go/internal/domain/audit"
	"github.com/corehr/hr-payroll-go/internal/domain/policy"
	"github.com/go-chi/jwtauth/v5"
)

type PolicyServiceImpl struct {
	policy.PolicyRepository
	auditService audit.AuditService
}

func NewPolicyService(policyRepo policy.PolicyRepository, auditService audit.AuditService) policy.PolicyService {
	return &PolicyServiceImpl{
		PolicyRepository: policyRepo,
		auditService:     auditService,
	}
}

func (s *PolicyServiceImpl) Get(ctx context.Context, orgID string) (map[string]any, error) {
	override, err := s.PolicyRepository.GetOverride(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return policy.DeepMerge(policy.DefaultDocument(), override), nil
}

func (s *PolicyServiceImpl) Snapshot(ctx context.Context, orgID string) (policy.Snapshot, error) {
	doc, err := s.Get(ctx, orgID)
	if err != nil {
		return policy.Snapshot{}, err
	}
	return policy.NewSnapshot(doc), nil
}

func (s *PolicyServiceImpl) Put(ctx context.Context, orgID string, doc map[string]any) (map[string]any, error) {
	if doc == nil {
		return nil, policy.ErrInvalidDocument
	}
	for section := range doc {
		if !policy.IsKnownSection(section) {
			return nil, policy.ErrUnknownSection
		}
	}

	before, err := s.PolicyRepository.GetOverride(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := s.PolicyRepository.UpsertOverride(ctx, orgID, doc); err != nil {
		return nil, err
	}

	s.auditService.Log(ctx, audit.ActionPolicyUpdated, actorFromContext(ctx),
		"policy override replaced", before, doc)

	return policy.DeepMerge(policy.DefaultDocument(), doc), nil
}

func (s *PolicyServiceImpl) PutSection(ctx context.Context, orgID string, section string, doc map[string]any) (map[string]any, error) {
	if !policy.IsKnownSection(section) {
		return nil, policy.ErrUnknownSection
	}
	if doc == nil {
		return nil, policy.ErrInvalidDocument
	}

	override, err := s.PolicyRepository.GetOverride(ctx, orgID)
	if err != nil {
		return nil, err
	}
	before := policy.DeepMerge(map[string]any{}, override)
	if override == nil {
		override = make(map[string]any)
	}
	override[section] = doc

	if err := s.PolicyRepository.UpsertOverride(ctx, orgID, override); err != nil {
		return nil, err
	}

	s.auditService.Log(ctx, audit.ActionPolicyUpdated, actorFromContext(ctx),
		"policy section "+section+" replaced", before, override)

	return policy.DeepMerge(policy.DefaultDocument(), override), nil
}

// actorFromContext is best-effort: policy edits arrive through authenticated
// routes, but background callers resolve snapshots without claims.
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

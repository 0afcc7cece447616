package policy

import (
	"context"
)

// PolicyService resolves and edits organization policy documents
type PolicyService interface {
	// Get returns defaults deep-merged with the stored override
	Get(ctx context.Context, orgID string) (map[string]any, error)

	// Snapshot returns the resolved document wrapped in typed accessors,
	// for consumption by attendance and payroll
	Snapshot(ctx context.Context, orgID string) (Snapshot, error)

	// Put replaces the whole override document
	Put(ctx context.Context, orgID string, doc map[string]any) (map[string]any, error)

	// PutSection replaces one top-level section of the override; unknown
	// section names fail
	PutSection(ctx context.Context, orgID string, section string, doc map[string]any) (map[string]any, error)
}

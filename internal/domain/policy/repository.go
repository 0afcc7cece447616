package policy

import (
	"context"
)

// PolicyRepository persists per-organization override documents. The stored
// document holds only overrides; defaults are merged in at read time.
type PolicyRepository interface {
	// GetOverride returns the stored override, nil when none exists
	GetOverride(ctx context.Context, orgID string) (map[string]any, error)

	// UpsertOverride writes the whole override document
	UpsertOverride(ctx context.Context, orgID string, doc map[string]any) error
}

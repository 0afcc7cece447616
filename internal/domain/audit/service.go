package audit

import (
	"context"
)

// AuditService records actions best-effort: a failed write is logged and
// swallowed, never surfaced to the calling flow.
type AuditService interface {
	Log(ctx context.Context, action string, actorID *string, message string, before, after map[string]any)
	List(ctx context.Context, action *string, limit int) ([]Entry, error)
}

package audit

import (
	"context"
)

type AuditRepository interface {
	Create(ctx context.Context, entry Entry) error
	List(ctx context.Context, action *string, limit int) ([]Entry, error)
}

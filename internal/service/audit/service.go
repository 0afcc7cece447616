package audit

import (
	"context"
	"log/slog"

	"github.com/corehr/hr-payroll-go/internal/domain/audit"
)

type AuditServiceImpl struct {
	audit.AuditRepository
}

func NewAuditService(auditRepo audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{
		AuditRepository: auditRepo,
	}
}

// Log writes an audit entry best-effort. Failures are logged and swallowed so
// the originating flow never fails because of the trail.
func (s *AuditServiceImpl) Log(ctx context.Context, action string, actorID *string, message string, before, after map[string]any) {
	entry := audit.Entry{
		Action:  action,
		ActorID: actorID,
		Message: message,
		Before:  before,
		After:   after,
	}
	if err := s.AuditRepository.Create(ctx, entry); err != nil {
		slog.Error("failed to write audit entry", "action", action, "error", err)
	}
}

func (s *AuditServiceImpl) List(ctx context.Context, action *string, limit int) ([]audit.Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.AuditRepository.List(ctx, action, limit)
}

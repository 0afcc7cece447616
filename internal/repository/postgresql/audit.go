package postgresql

import (
	"context"
	"fmt"

	"github.com/corehr/hr-payroll-go/internal/domain/audit"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// Create implements audit.AuditRepository.
func (a *auditRepository) Create(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO audit_entries (action, actor_id, message, before, after)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query,
		entry.Action,
		entry.ActorID,
		entry.Message,
		entry.Before,
		entry.After,
	); err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

// List implements audit.AuditRepository.
func (a *auditRepository) List(ctx context.Context, action *string, limit int) ([]audit.Entry, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, action, actor_id, message, before, after, created_at
		FROM audit_entries
		WHERE ($1::text IS NULL OR action = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, action, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		err := rows.Scan(
			&entry.ID, &entry.Action, &entry.ActorID, &entry.Message,
			&entry.Before, &entry.After, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/policy"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepository struct {
	db *database.DB
}

// GetOverride implements policy.PolicyRepository.
func (p *policyRepository) GetOverride(ctx context.Context, orgID string) (map[string]any, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT document
		FROM policy_overrides
		WHERE org_id = $1
	`

	var doc map[string]any
	err := q.QueryRow(ctx, query, orgID).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No override stored, defaults apply
		}
		return nil, fmt.Errorf("failed to get policy override: %w", err)
	}

	return doc, nil
}

// UpsertOverride implements policy.PolicyRepository.
func (p *policyRepository) UpsertOverride(ctx context.Context, orgID string, doc map[string]any) error {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO policy_overrides (org_id, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (org_id)
		DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`

	if _, err := q.Exec(ctx, query, orgID, doc, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert policy override: %w", err)
	}

	return nil
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}

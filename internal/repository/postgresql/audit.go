package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/audit"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// Create implements audit.Repository.
func (r *auditRepository) Create(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_entries (actor_id, action, employee_id, date, details)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, entry.ActorID, entry.Action, entry.EmployeeID, entry.Date, entry.Details); err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

// ListByEmployee implements audit.Repository.
func (r *auditRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, actor_id, action, employee_id, date, details, created_at
		FROM audit_entries
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EmployeeID, &e.Date, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepository{db: db}
}

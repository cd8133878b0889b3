package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

// GetByID implements leave.TypeRepository.
func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, category, days_allowed_per_year, max_consecutive_days,
			   min_notice_days, requires_certificate, carry_forward_allowed,
			   carry_forward_max_days, is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var t leave.Type
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Code, &t.Category, &t.DaysAllowedPerYear, &t.MaxConsecutiveDays,
		&t.MinNoticeDays, &t.RequiresCertificate, &t.CarryForwardAllowed,
		&t.CarryForwardMaxDays, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)

	if err != nil {
		return leave.Type{}, err
	}

	return t, nil
}

// List implements leave.TypeRepository.
func (r *leaveTypeRepository) List(ctx context.Context) ([]leave.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, category, days_allowed_per_year, max_consecutive_days,
			   min_notice_days, requires_certificate, carry_forward_allowed,
			   carry_forward_max_days, is_active, created_at, updated_at
		FROM leave_types
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.Type
	for rows.Next() {
		var t leave.Type
		err := rows.Scan(
			&t.ID, &t.Name, &t.Code, &t.Category, &t.DaysAllowedPerYear, &t.MaxConsecutiveDays,
			&t.MinNoticeDays, &t.RequiresCertificate, &t.CarryForwardAllowed,
			&t.CarryForwardMaxDays, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave types: %w", err)
	}

	return types, nil
}

func NewLeaveTypeRepository(db *database.DB) leave.TypeRepository {
	return &leaveTypeRepository{db: db}
}

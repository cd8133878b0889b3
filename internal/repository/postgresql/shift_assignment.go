package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

// Create implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) Create(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (employee_id, shift_id, effective_from, effective_to, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.ShiftID, a.EffectiveFrom, a.EffectiveTo, a.IsActive, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return a, nil
}

// GetByID implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) GetByID(ctx context.Context, id string) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, shift_id, effective_from, effective_to, is_active, notes, created_at, updated_at
		FROM shift_assignments
		WHERE id = $1
	`

	var a shift.Assignment
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.ShiftID, &a.EffectiveFrom, &a.EffectiveTo,
		&a.IsActive, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)

	if err != nil {
		return shift.Assignment{}, err
	}

	return a, nil
}

// ListEffectiveOnOrBefore implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) ListEffectiveOnOrBefore(ctx context.Context, employeeID string, date time.Time) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, shift_id, effective_from, effective_to, is_active, notes, created_at, updated_at
		FROM shift_assignments
		WHERE employee_id = $1
		  AND is_active = TRUE
		  AND effective_from <= $2
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		var a shift.Assignment
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ShiftID, &a.EffectiveFrom, &a.EffectiveTo,
			&a.IsActive, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, nil
}

// HasOverlapping implements shift.AssignmentRepository. An open-ended range on
// either side overlaps everything from its effective_from onwards.
func (r *shiftAssignmentRepository) HasOverlapping(ctx context.Context, employeeID string, from time.Time, to *time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM shift_assignments
			WHERE employee_id = $1
			  AND is_active = TRUE
			  AND id::text != $2
			  AND effective_from <= COALESCE($4, 'infinity'::timestamptz)
			  AND COALESCE(effective_to, 'infinity'::timestamptz) >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, excludeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping assignments: %w", err)
	}

	return exists, nil
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}

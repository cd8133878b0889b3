package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			name, code, start_minute, end_minute, break_minutes,
			grace_minutes, overtime_threshold_minutes, is_night_shift,
			weekend_applicable, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.Name, s.Code, s.StartMinute, s.EndMinute, s.BreakMinutes,
		s.GraceMinutes, s.OvertimeThresholdMinutes, s.IsNightShift,
		s.WeekendApplicable, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, start_minute, end_minute, break_minutes,
			   grace_minutes, overtime_threshold_minutes, is_night_shift,
			   weekend_applicable, is_active, created_at, updated_at
		FROM shifts
		WHERE id = $1
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Code, &s.StartMinute, &s.EndMinute, &s.BreakMinutes,
		&s.GraceMinutes, &s.OvertimeThresholdMinutes, &s.IsNightShift,
		&s.WeekendApplicable, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		return shift.Shift{}, err
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, start_minute, end_minute, break_minutes,
			   grace_minutes, overtime_threshold_minutes, is_night_shift,
			   weekend_applicable, is_active, created_at, updated_at
		FROM shifts
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		err := rows.Scan(
			&s.ID, &s.Name, &s.Code, &s.StartMinute, &s.EndMinute, &s.BreakMinutes,
			&s.GraceMinutes, &s.OvertimeThresholdMinutes, &s.IsNightShift,
			&s.WeekendApplicable, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

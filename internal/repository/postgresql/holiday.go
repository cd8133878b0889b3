package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

// Create implements holiday.Repository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (name, date, recurrence_rule, department_ids, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		h.Name, h.Date, h.RecurrenceRule, h.DepartmentIDs, h.IsActive,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)

	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// ListBetween implements holiday.Repository.
func (r *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, recurrence_rule, department_ids, is_active, created_at, updated_at
		FROM holidays
		WHERE is_active = TRUE
		  AND recurrence_rule IS NULL
		  AND date >= $1
		  AND date <= $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// ListRecurring implements holiday.Repository.
func (r *holidayRepository) ListRecurring(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, recurrence_rule, department_ids, is_active, created_at, updated_at
		FROM holidays
		WHERE is_active = TRUE
		  AND recurrence_rule IS NOT NULL
		ORDER BY date
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

func collectHolidays(rows pgx.Rows) ([]holiday.Holiday, error) {
	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		err := rows.Scan(
			&h.ID, &h.Name, &h.Date, &h.RecurrenceRule, &h.DepartmentIDs,
			&h.IsActive, &h.CreatedAt, &h.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return holidays, nil
}

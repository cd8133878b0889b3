package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/summary"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

type summaryRepository struct {
	db *database.DB
}

const summaryColumns = `id, employee_id, year, month,
	total_work_minutes, total_break_minutes, total_overtime_minutes, total_undertime_minutes,
	working_days, attended_days, half_days, late_days, early_days,
	absent_days, leave_days, holiday_days,
	attendance_percentage, punctuality_score, average_work_hours,
	earliest_in, latest_out, generated_at, updated_at`

// Upsert implements summary.Repository. The (employee, year, month) key makes
// regeneration idempotent: the second run replaces the first.
func (r *summaryRepository) Upsert(ctx context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_summaries (
			employee_id, year, month,
			total_work_minutes, total_break_minutes, total_overtime_minutes, total_undertime_minutes,
			working_days, attended_days, half_days, late_days, early_days,
			absent_days, leave_days, holiday_days,
			attendance_percentage, punctuality_score, average_work_hours,
			earliest_in, latest_out, generated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21
		)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			total_work_minutes = EXCLUDED.total_work_minutes,
			total_break_minutes = EXCLUDED.total_break_minutes,
			total_overtime_minutes = EXCLUDED.total_overtime_minutes,
			total_undertime_minutes = EXCLUDED.total_undertime_minutes,
			working_days = EXCLUDED.working_days,
			attended_days = EXCLUDED.attended_days,
			half_days = EXCLUDED.half_days,
			late_days = EXCLUDED.late_days,
			early_days = EXCLUDED.early_days,
			absent_days = EXCLUDED.absent_days,
			leave_days = EXCLUDED.leave_days,
			holiday_days = EXCLUDED.holiday_days,
			attendance_percentage = EXCLUDED.attendance_percentage,
			punctuality_score = EXCLUDED.punctuality_score,
			average_work_hours = EXCLUDED.average_work_hours,
			earliest_in = EXCLUDED.earliest_in,
			latest_out = EXCLUDED.latest_out,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID, s.Year, s.Month,
		s.TotalWorkMinutes, s.TotalBreakMinutes, s.TotalOvertimeMinutes, s.TotalUndertimeMinutes,
		s.WorkingDays, s.AttendedDays, s.HalfDays, s.LateDays, s.EarlyDays,
		s.AbsentDays, s.LeaveDays, s.HolidayDays,
		s.AttendancePercentage, s.PunctualityScore, s.AverageWorkHours,
		s.EarliestIn, s.LatestOut, s.GeneratedAt,
	).Scan(&s.ID, &s.UpdatedAt)

	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to upsert monthly summary: %w", err)
	}

	return s, nil
}

// GetByEmployeeMonth implements summary.Repository.
func (r *summaryRepository) GetByEmployeeMonth(ctx context.Context, employeeID string, year, month int) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryColumns + `
		FROM monthly_summaries
		WHERE employee_id = $1 AND year = $2 AND month = $3`

	return scanSummary(q.QueryRow(ctx, query, employeeID, year, month))
}

// ListByMonth implements summary.Repository.
func (r *summaryRepository) ListByMonth(ctx context.Context, year, month int) ([]summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryColumns + `
		FROM monthly_summaries
		WHERE year = $1 AND month = $2
		ORDER BY employee_id`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []summary.MonthlySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly summaries: %w", err)
	}

	return summaries, nil
}

func NewSummaryRepository(db *database.DB) summary.Repository {
	return &summaryRepository{db: db}
}

func scanSummary(row rowScanner) (summary.MonthlySummary, error) {
	var s summary.MonthlySummary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Year, &s.Month,
		&s.TotalWorkMinutes, &s.TotalBreakMinutes, &s.TotalOvertimeMinutes, &s.TotalUndertimeMinutes,
		&s.WorkingDays, &s.AttendedDays, &s.HalfDays, &s.LateDays, &s.EarlyDays,
		&s.AbsentDays, &s.LeaveDays, &s.HolidayDays,
		&s.AttendancePercentage, &s.PunctualityScore, &s.AverageWorkHours,
		&s.EarliestIn, &s.LatestOut, &s.GeneratedAt, &s.UpdatedAt,
	)
	if err != nil {
		return summary.MonthlySummary{}, err
	}
	return s, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRecordRepository struct {
	db *database.DB
}

const recordColumns = `id, employee_id, date, shift_id,
	check_in_1, check_out_1, check_in_2, check_out_2, check_in_3, check_out_3,
	check_in_4, check_out_4, check_in_5, check_out_5, check_in_6, check_out_6,
	total_minutes, break_minutes, work_minutes, overtime_minutes, undertime_minutes,
	first_in, last_out, status, late_minutes, early_departure_minutes,
	is_manual, is_holiday, is_weekend, notes, version, created_at, updated_at`

// Create implements attendance.RecordRepository.
func (r *attendanceRecordRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, shift_id,
			check_in_1, check_out_1, check_in_2, check_out_2, check_in_3, check_out_3,
			check_in_4, check_out_4, check_in_5, check_out_5, check_in_6, check_out_6,
			total_minutes, break_minutes, work_minutes, overtime_minutes, undertime_minutes,
			first_in, last_out, status, late_minutes, early_departure_minutes,
			is_manual, is_holiday, is_weekend, notes, version
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25,
			$26, $27, $28, $29, 1
		) RETURNING id, version, created_at, updated_at
	`

	checks := flattenPairs(record.Pairs)
	args := []interface{}{record.EmployeeID, record.Date, record.ShiftID}
	args = append(args, checks...)
	args = append(args,
		record.TotalMinutes, record.BreakMinutes, record.WorkMinutes,
		record.OvertimeMinutes, record.UndertimeMinutes,
		record.FirstIn, record.LastOut, record.Status,
		record.LateMinutes, record.EarlyDepartureMinutes,
		record.IsManual, record.IsHoliday, record.IsWeekend, record.Notes,
	)

	err := q.QueryRow(ctx, query, args...).
		Scan(&record.ID, &record.Version, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// concurrent first-write of the same employee-day
			return attendance.Record{}, attendance.ErrConflict
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.RecordRepository.
func (r *attendanceRecordRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE id = $1`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *attendanceRecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
		LIMIT 1`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &record, nil
}

// Update implements attendance.RecordRepository. The WHERE version clause is
// the optimistic lock: zero rows updated means another writer got there first.
func (r *attendanceRecordRepository) Update(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			shift_id = $1,
			check_in_1 = $2, check_out_1 = $3, check_in_2 = $4, check_out_2 = $5,
			check_in_3 = $6, check_out_3 = $7, check_in_4 = $8, check_out_4 = $9,
			check_in_5 = $10, check_out_5 = $11, check_in_6 = $12, check_out_6 = $13,
			total_minutes = $14, break_minutes = $15, work_minutes = $16,
			overtime_minutes = $17, undertime_minutes = $18,
			first_in = $19, last_out = $20, status = $21,
			late_minutes = $22, early_departure_minutes = $23,
			is_manual = $24, is_holiday = $25, is_weekend = $26, notes = $27,
			version = version + 1, updated_at = NOW()
		WHERE id = $28 AND version = $29
		RETURNING version, updated_at
	`

	checks := flattenPairs(record.Pairs)
	args := []interface{}{record.ShiftID}
	args = append(args, checks...)
	args = append(args,
		record.TotalMinutes, record.BreakMinutes, record.WorkMinutes,
		record.OvertimeMinutes, record.UndertimeMinutes,
		record.FirstIn, record.LastOut, record.Status,
		record.LateMinutes, record.EarlyDepartureMinutes,
		record.IsManual, record.IsHoliday, record.IsWeekend, record.Notes,
		record.ID, record.Version,
	)

	err := q.QueryRow(ctx, query, args...).Scan(&record.Version, &record.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrConflict
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return record, nil
}

// ListByEmployeeRange implements attendance.RecordRepository.
func (r *attendanceRecordRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// List implements attendance.RecordRepository.
func (r *attendanceRecordRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, *filter.DateTo)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := `SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE ` + where + `
		ORDER BY date DESC, employee_id ASC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func NewAttendanceRecordRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRecordRepository{db: db}
}

// flattenPairs spreads up to MaxPairs pairs into the 12 check columns.
func flattenPairs(pairs []attendance.TimePair) []interface{} {
	checks := make([]interface{}, 0, attendance.MaxPairs*2)
	for i := 0; i < attendance.MaxPairs; i++ {
		if i < len(pairs) {
			checks = append(checks, pairs[i].In, pairs[i].Out)
		} else {
			checks = append(checks, nil, nil)
		}
	}
	return checks
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (attendance.Record, error) {
	var record attendance.Record
	checks := make([]*time.Time, attendance.MaxPairs*2)

	dest := []interface{}{&record.ID, &record.EmployeeID, &record.Date, &record.ShiftID}
	for i := range checks {
		dest = append(dest, &checks[i])
	}
	dest = append(dest,
		&record.TotalMinutes, &record.BreakMinutes, &record.WorkMinutes,
		&record.OvertimeMinutes, &record.UndertimeMinutes,
		&record.FirstIn, &record.LastOut, &record.Status,
		&record.LateMinutes, &record.EarlyDepartureMinutes,
		&record.IsManual, &record.IsHoliday, &record.IsWeekend, &record.Notes,
		&record.Version, &record.CreatedAt, &record.UpdatedAt,
	)

	if err := row.Scan(dest...); err != nil {
		return attendance.Record{}, err
	}

	for i := 0; i < attendance.MaxPairs; i++ {
		in, out := checks[i*2], checks[i*2+1]
		if in == nil && out == nil {
			continue
		}
		record.Pairs = append(record.Pairs, attendance.TimePair{In: in, Out: out})
	}

	return record, nil
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}

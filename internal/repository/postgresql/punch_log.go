package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type punchLogRepository struct {
	db *database.DB
}

// CreateBatch implements attendance.PunchLogRepository.
func (r *punchLogRepository) CreateBatch(ctx context.Context, punches []attendance.PunchLog) error {
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO punch_logs (id, employee_id, employee_code, device_id, timestamp, type, processing_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i := range punches {
		if punches[i].ID == "" {
			punches[i].ID = uuid.New().String()
		}
		p := punches[i]
		batch.Queue(query, p.ID, p.EmployeeID, p.EmployeeCode, p.DeviceID, p.Timestamp, p.Type, p.ProcessingStatus)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range punches {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert punch log: %w", err)
		}
	}

	return nil
}

// ListPending implements attendance.PunchLogRepository.
func (r *punchLogRepository) ListPending(ctx context.Context, limit int) ([]attendance.PunchLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, employee_code, device_id, timestamp, type,
			   processing_status, processed_at, error_message, created_at
		FROM punch_logs
		WHERE processing_status = $1
		ORDER BY employee_id, timestamp
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, attendance.PunchStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending punches: %w", err)
	}
	defer rows.Close()

	return collectPunchLogs(rows)
}

// ListByEmployeeAndDate implements attendance.PunchLogRepository.
func (r *punchLogRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.PunchLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, employee_code, device_id, timestamp, type,
			   processing_status, processed_at, error_message, created_at
		FROM punch_logs
		WHERE employee_id = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		ORDER BY timestamp, created_at
	`

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	rows, err := q.Query(ctx, query, employeeID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	return collectPunchLogs(rows)
}

// MarkProcessed implements attendance.PunchLogRepository.
func (r *punchLogRepository) MarkProcessed(ctx context.Context, ids []string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punch_logs
		SET processing_status = $1, processed_at = NOW(), error_message = NULL
		WHERE id = ANY($2)
	`

	if _, err := q.Exec(ctx, query, attendance.PunchStatusProcessed, ids); err != nil {
		return fmt.Errorf("failed to mark punches processed: %w", err)
	}

	return nil
}

// MarkError implements attendance.PunchLogRepository.
func (r *punchLogRepository) MarkError(ctx context.Context, ids []string, message string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punch_logs
		SET processing_status = $1, processed_at = NOW(), error_message = $2
		WHERE id = ANY($3)
	`

	if _, err := q.Exec(ctx, query, attendance.PunchStatusError, message, ids); err != nil {
		return fmt.Errorf("failed to mark punches errored: %w", err)
	}

	return nil
}

func NewPunchLogRepository(db *database.DB) attendance.PunchLogRepository {
	return &punchLogRepository{db: db}
}

func collectPunchLogs(rows pgx.Rows) ([]attendance.PunchLog, error) {
	var punches []attendance.PunchLog
	for rows.Next() {
		var p attendance.PunchLog
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.EmployeeCode, &p.DeviceID, &p.Timestamp, &p.Type,
			&p.ProcessingStatus, &p.ProcessedAt, &p.ErrorMessage, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch log: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch logs: %w", err)
	}
	return punches, nil
}

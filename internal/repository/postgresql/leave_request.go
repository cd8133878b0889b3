package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

const leaveRequestColumns = `id, employee_id, leave_type_id, start_date, end_date,
	total_days, is_half_day, reason, status, applied_at,
	decided_by, decided_at, rejection_reason, created_at, updated_at`

// Create implements leave.RequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type_id, start_date, end_date,
			total_days, is_half_day, reason, status, applied_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID, request.StartDate, request.EndDate,
		request.TotalDays, request.IsHalfDay, request.Reason, request.Status, request.AppliedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

// UpdateStatus implements leave.RequestRepository.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, decidedBy string, decidedAt time.Time, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, status, decidedBy, decidedAt, rejectionReason, id)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// HasOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND id::text != $2
			  AND status IN ('PENDING', 'APPROVED')
			  AND start_date <= $4
			  AND end_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, excludeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return exists, nil
}

// FindApprovedCovering implements leave.RequestRepository.
func (r *leaveRequestRepository) FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'APPROVED'
		  AND start_date <= $2
		  AND end_date >= $2
		LIMIT 1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find approved leave: %w", err)
	}

	return &request, nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string, statuses []leave.RequestStatus) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1`
	args := []interface{}{employeeID}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = fmt.Sprintf("$%d", i+2)
			args = append(args, status)
		}
		query += ` AND status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, nil
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

func scanLeaveRequest(row rowScanner) (leave.Request, error) {
	var request leave.Request
	err := row.Scan(
		&request.ID, &request.EmployeeID, &request.LeaveTypeID, &request.StartDate, &request.EndDate,
		&request.TotalDays, &request.IsHalfDay, &request.Reason, &request.Status, &request.AppliedAt,
		&request.DecidedBy, &request.DecidedAt, &request.RejectionReason, &request.CreatedAt, &request.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}
	return request, nil
}

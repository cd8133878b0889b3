package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type correctionRepository struct {
	db *database.DB
}

const correctionColumns = `id, attendance_id, correction_type, reason,
	original_data, corrected_data, requested_by, requested_at,
	status, decided_by, decided_at, rejection_reason, created_at, updated_at`

// Create implements correction.Repository.
func (r *correctionRepository) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_corrections (
			attendance_id, correction_type, reason,
			original_data, corrected_data, requested_by, requested_at, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.AttendanceID, c.Type, c.Reason,
		c.OriginalData, c.CorrectedData, c.RequestedBy, c.RequestedAt, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return correction.Correction{}, fmt.Errorf("failed to create correction: %w", err)
	}

	return c, nil
}

// GetByID implements correction.Repository.
func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + ` FROM attendance_corrections WHERE id = $1`

	return scanCorrection(q.QueryRow(ctx, query, id))
}

// UpdateStatus implements correction.Repository.
func (r *correctionRepository) UpdateStatus(ctx context.Context, id string, status correction.CorrectionStatus, decidedBy string, decidedAt time.Time, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_corrections
		SET status = $1, decided_by = $2, decided_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, status, decidedBy, decidedAt, rejectionReason, id)
	if err != nil {
		return fmt.Errorf("failed to update correction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// ListByAttendance implements correction.Repository.
func (r *correctionRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + `
		FROM attendance_corrections
		WHERE attendance_id = $1
		ORDER BY requested_at DESC`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	return collectCorrections(rows)
}

// ListByStatus implements correction.Repository.
func (r *correctionRepository) ListByStatus(ctx context.Context, status correction.CorrectionStatus, limit int) ([]correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + `
		FROM attendance_corrections
		WHERE status = $1
		ORDER BY requested_at ASC
		LIMIT $2`

	rows, err := q.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	return collectCorrections(rows)
}

func NewCorrectionRepository(db *database.DB) correction.Repository {
	return &correctionRepository{db: db}
}

func scanCorrection(row rowScanner) (correction.Correction, error) {
	var c correction.Correction
	err := row.Scan(
		&c.ID, &c.AttendanceID, &c.Type, &c.Reason,
		&c.OriginalData, &c.CorrectedData, &c.RequestedBy, &c.RequestedAt,
		&c.Status, &c.DecidedBy, &c.DecidedAt, &c.RejectionReason, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return correction.Correction{}, err
	}
	return c, nil
}

func collectCorrections(rows pgx.Rows) ([]correction.Correction, error) {
	var corrections []correction.Correction
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}
	return corrections, nil
}

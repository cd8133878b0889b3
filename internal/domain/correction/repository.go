package correction

import (
	"context"
	"time"
)

// Repository defines data access for attendance corrections.
type Repository interface {
	Create(ctx context.Context, correction Correction) (Correction, error)
	GetByID(ctx context.Context, id string) (Correction, error)

	// UpdateStatus transitions a correction and records the decision.
	UpdateStatus(ctx context.Context, id string, status CorrectionStatus, decidedBy string, decidedAt time.Time, rejectionReason *string) error

	ListByAttendance(ctx context.Context, attendanceID string) ([]Correction, error)
	ListByStatus(ctx context.Context, status CorrectionStatus, limit int) ([]Correction, error)
}

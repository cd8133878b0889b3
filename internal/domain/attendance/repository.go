package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access for reconciled daily records.
type RecordRepository interface {
	// Create inserts a new record. The unique (employee_id, date) constraint
	// maps to ErrConflict so concurrent first-writes surface to the caller.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by its ID.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one employee-day, or nil.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// Update persists a record guarded by its version; a stale version
	// returns ErrConflict.
	Update(ctx context.Context, record Record) (Record, error)

	// ListByEmployeeRange retrieves records for an employee within [from, to].
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)
}

// PunchLogRepository defines data access for the append-only punch log.
type PunchLogRepository interface {
	// CreateBatch appends a sync cycle worth of punches.
	CreateBatch(ctx context.Context, punches []PunchLog) error

	// ListPending retrieves unprocessed punches ordered by employee and time.
	ListPending(ctx context.Context, limit int) ([]PunchLog, error)

	// ListByEmployeeAndDate retrieves all punches of one employee-day.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]PunchLog, error)

	// MarkProcessed flips punch rows to PROCESSED.
	MarkProcessed(ctx context.Context, ids []string) error

	// MarkError records a processing failure on punch rows.
	MarkError(ctx context.Context, ids []string, message string) error
}

package leave

import (
	"context"
	"time"
)

// TypeRepository defines data access for leave types.
type TypeRepository interface {
	GetByID(ctx context.Context, id string) (Type, error)
	List(ctx context.Context) ([]Type, error)
}

// BalanceRepository owns the leave ledger rows. UsedDays is only ever changed
// through AddUsed/SubtractUsed so every mutation is an atomic
// read-modify-write inside the caller's transaction.
type BalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)

	// GetForUpdate locks the balance row (SELECT ... FOR UPDATE) for the
	// remainder of the surrounding transaction.
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)

	// AddUsed increments used_days by days.
	AddUsed(ctx context.Context, id string, days float64) error

	// SubtractUsed decrements used_days by days, floored at zero.
	SubtractUsed(ctx context.Context, id string, days float64) error

	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Balance, error)
}

// RequestRepository defines data access for leave requests.
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// UpdateStatus transitions a request and records the decision metadata.
	UpdateStatus(ctx context.Context, id string, status RequestStatus, decidedBy string, decidedAt time.Time, rejectionReason *string) error

	// HasOverlapping reports whether a PENDING or APPROVED request of the
	// employee overlaps [start, end], excluding excludeID.
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)

	// FindApprovedCovering retrieves the APPROVED request covering date, or nil.
	FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) (*Request, error)

	ListByEmployee(ctx context.Context, employeeID string, statuses []RequestStatus) ([]Request, error)
}

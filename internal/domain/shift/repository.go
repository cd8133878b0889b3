package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for shift templates.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context) ([]Shift, error)
}

// AssignmentRepository defines data access for employee shift assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string) (Assignment, error)

	// ListEffectiveOnOrBefore retrieves the active assignments of an employee
	// whose effective_from is on or before date. The resolver picks between
	// bounded and open-ended matches.
	ListEffectiveOnOrBefore(ctx context.Context, employeeID string, date time.Time) ([]Assignment, error)

	// HasOverlapping reports whether an active assignment of the employee
	// overlaps [from, to] ("to" nil meaning open-ended), excluding excludeID.
	HasOverlapping(ctx context.Context, employeeID string, from time.Time, to *time.Time, excludeID string) (bool, error)
}

package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/jackc/pgx/v5"
)

// Resolver answers "which shift governs this employee on this date". It is a
// pure lookup with no side effects.
type Resolver struct {
	shift.ShiftRepository
	shift.AssignmentRepository
}

func NewResolver(shiftRepo shift.ShiftRepository, assignmentRepo shift.AssignmentRepository) *Resolver {
	return &Resolver{
		ShiftRepository:      shiftRepo,
		AssignmentRepository: assignmentRepo,
	}
}

// PickAssignment selects the governing assignment out of the candidates:
// a bounded assignment covering the date wins over an open-ended one; an
// open-ended assignment with effective_from on or before the date is the
// fallback. The overlap invariant guarantees at most one of each can match.
func PickAssignment(assignments []shift.Assignment, date time.Time) *shift.Assignment {
	var openEnded *shift.Assignment

	for i := range assignments {
		a := &assignments[i]
		if !a.Covers(date) {
			continue
		}
		if a.EffectiveTo != nil {
			return a
		}
		if openEnded == nil {
			openEnded = a
		}
	}

	return openEnded
}

// Resolve returns the effective shift for the employee-day, or nil when no
// assignment covers the date. Callers decide whether to fall back to a
// configured default shift.
func (r *Resolver) Resolve(ctx context.Context, employeeID string, date time.Time) (*shift.Shift, error) {
	assignments, err := r.AssignmentRepository.ListEffectiveOnOrBefore(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	assignment := PickAssignment(assignments, date)
	if assignment == nil {
		return nil, nil
	}

	resolved, err := r.ShiftRepository.GetByID(ctx, assignment.ShiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}

	return &resolved, nil
}

package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
)

// Service manages shift assignments.
type Service struct {
	shift.ShiftRepository
	shift.AssignmentRepository
}

func NewService(shiftRepo shift.ShiftRepository, assignmentRepo shift.AssignmentRepository) *Service {
	return &Service{
		ShiftRepository:      shiftRepo,
		AssignmentRepository: assignmentRepo,
	}
}

// AssignShift creates a shift assignment after checking the overlap
// invariant: no two active assignments of one employee may overlap in date.
func (s *Service) AssignShift(ctx context.Context, req shift.CreateAssignmentRequest) (shift.Assignment, error) {
	if err := req.Validate(); err != nil {
		return shift.Assignment{}, err
	}

	from, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	var to *time.Time
	if req.EffectiveTo != nil {
		parsed, _ := time.Parse("2006-01-02", *req.EffectiveTo)
		to = &parsed
	}

	if _, err := s.ShiftRepository.GetByID(ctx, req.ShiftID); err != nil {
		return shift.Assignment{}, shift.ErrShiftNotFound
	}

	overlapping, err := s.AssignmentRepository.HasOverlapping(ctx, req.EmployeeID, from, to, "")
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to check overlapping assignments: %w", err)
	}
	if overlapping {
		return shift.Assignment{}, shift.ErrOverlappingAssignment
	}

	assignment := shift.Assignment{
		EmployeeID:    req.EmployeeID,
		ShiftID:       req.ShiftID,
		EffectiveFrom: from,
		EffectiveTo:   to,
		IsActive:      true,
		Notes:         req.Notes,
	}

	created, err := s.AssignmentRepository.Create(ctx, assignment)
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return created, nil
}

package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/audit"
	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	"github.com/chronohr/attendance-backend-go/internal/service/holiday"
	"github.com/jackc/pgx/v5"
)

// Service owns the leave request lifecycle and is the only writer of the
// leave balance ledger.
type Service struct {
	db *database.DB
	leave.TypeRepository
	leave.BalanceRepository
	leave.RequestRepository
	audits   audit.Repository
	holidays holiday.Checker
}

func NewService(
	db *database.DB,
	typeRepo leave.TypeRepository,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
	audits audit.Repository,
	holidays holiday.Checker,
) *Service {
	return &Service{
		db:                db,
		TypeRepository:    typeRepo,
		BalanceRepository: balanceRepo,
		RequestRepository: requestRepo,
		audits:            audits,
		holidays:          holidays,
	}
}

// CreateRequest files a leave application in PENDING state. Total days are
// fixed here and never recomputed. Balance is only checked informationally at
// approval time, not at submission.
func (s *Service) CreateRequest(ctx context.Context, req leave.CreateRequestRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	leaveType, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrTypeNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	now := time.Now().UTC()
	if leaveType.MinNoticeDays > 0 {
		noticeDeadline := truncateToDay(now).AddDate(0, 0, leaveType.MinNoticeDays)
		if start.Before(noticeDeadline) {
			return leave.Request{}, leave.ErrNoticeTooShort
		}
	}

	overlapping, err := s.RequestRepository.HasOverlapping(ctx, req.EmployeeID, start, end, "")
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlapping {
		return leave.Request{}, leave.ErrOverlappingRequest
	}

	holidays, err := s.holidays.HolidaysInRange(ctx, start, end, nil)
	if err != nil {
		return leave.Request{}, err
	}

	request := leave.Request{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		IsHalfDay:   req.IsHalfDay,
		Reason:      req.Reason,
		Status:      leave.RequestStatusPending,
		AppliedAt:   now,
		TotalDays: TotalDays(start, end, req.IsHalfDay, func(d time.Time) bool {
			return holidays[d.Format("2006-01-02")]
		}),
	}

	if leaveType.MaxConsecutiveDays != nil && request.TotalDays > *leaveType.MaxConsecutiveDays {
		return leave.Request{}, leave.ErrTooManyDays
	}

	created, err := s.RequestRepository.Create(ctx, request)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// Approve transitions a PENDING request to APPROVED and deducts its days from
// the balance ledger. The balance row is locked for the whole transaction, so
// two concurrent approvals of the same employee serialize and the second one
// sees the already reduced balance.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) (leave.Request, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	now := time.Now().UTC()

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		balance, err := s.BalanceRepository.GetForUpdate(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return leave.ErrBalanceNotFound
			}
			return fmt.Errorf("failed to lock leave balance: %w", err)
		}

		if balance.AvailableDays() < request.TotalDays {
			return leave.ErrInsufficientBalance
		}

		if err := s.BalanceRepository.AddUsed(txCtx, balance.ID, request.TotalDays); err != nil {
			return fmt.Errorf("failed to deduct leave balance: %w", err)
		}

		if err := s.RequestRepository.UpdateStatus(txCtx, request.ID, leave.RequestStatusApproved, approverID, now, nil); err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}

		return s.audits.Create(txCtx, audit.Entry{
			ActorID:    approverID,
			Action:     audit.ActionLeaveApproved,
			EmployeeID: request.EmployeeID,
			Date:       request.StartDate,
			Details: audit.Details{
				"request_id":     request.ID,
				"leave_type_id":  request.LeaveTypeID,
				"total_days":     request.TotalDays,
				"balance_before": balance.AvailableDays(),
				"balance_after":  balance.AvailableDays() - request.TotalDays,
			},
		})
	})
	if err != nil {
		return leave.Request{}, err
	}

	return s.getRequest(ctx, requestID)
}

// Reject transitions a PENDING or APPROVED request to REJECTED. Rejecting an
// approved request reverses its deduction under the same balance lock the
// approval took.
func (s *Service) Reject(ctx context.Context, requestID, approverID string, req leave.RejectRequestRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.RequestStatusPending && request.Status != leave.RequestStatusApproved {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	wasApproved := request.Status == leave.RequestStatusApproved
	now := time.Now().UTC()

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if wasApproved {
			balance, err := s.BalanceRepository.GetForUpdate(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return leave.ErrBalanceNotFound
				}
				return fmt.Errorf("failed to lock leave balance: %w", err)
			}

			if err := s.BalanceRepository.SubtractUsed(txCtx, balance.ID, request.TotalDays); err != nil {
				return fmt.Errorf("failed to restore leave balance: %w", err)
			}

			if err := s.audits.Create(txCtx, audit.Entry{
				ActorID:    approverID,
				Action:     audit.ActionBalanceRestored,
				EmployeeID: request.EmployeeID,
				Date:       request.StartDate,
				Details:    audit.Details{"request_id": request.ID, "total_days": request.TotalDays},
			}); err != nil {
				return fmt.Errorf("failed to write audit entry: %w", err)
			}
		}

		if err := s.RequestRepository.UpdateStatus(txCtx, request.ID, leave.RequestStatusRejected, approverID, now, &req.Reason); err != nil {
			return fmt.Errorf("failed to reject leave request: %w", err)
		}

		return s.audits.Create(txCtx, audit.Entry{
			ActorID:    approverID,
			Action:     audit.ActionLeaveRejected,
			EmployeeID: request.EmployeeID,
			Date:       request.StartDate,
			Details:    audit.Details{"request_id": request.ID, "reason": req.Reason, "was_approved": wasApproved},
		})
	})
	if err != nil {
		return leave.Request{}, err
	}

	return s.getRequest(ctx, requestID)
}

// Cancel cancels a PENDING or APPROVED request before its start date. Days
// already deducted by an approval are restored to the ledger in the same
// transaction.
func (s *Service) Cancel(ctx context.Context, requestID, actorID string) (leave.Request, error) {
	return s.release(ctx, requestID, actorID, leave.RequestStatusCancelled, audit.ActionLeaveCancelled)
}

// Withdraw is the employee-initiated variant of Cancel.
func (s *Service) Withdraw(ctx context.Context, requestID, actorID string) (leave.Request, error) {
	return s.release(ctx, requestID, actorID, leave.RequestStatusWithdrawn, audit.ActionLeaveWithdrawn)
}

func (s *Service) release(ctx context.Context, requestID, actorID string, target leave.RequestStatus, action string) (leave.Request, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	today := truncateToDay(time.Now().UTC())
	if !request.CanBeCancelled(today) {
		return leave.Request{}, leave.ErrNotCancellable
	}

	wasApproved := request.Status == leave.RequestStatusApproved
	now := time.Now().UTC()

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if wasApproved {
			balance, err := s.BalanceRepository.GetForUpdate(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return leave.ErrBalanceNotFound
				}
				return fmt.Errorf("failed to lock leave balance: %w", err)
			}

			if err := s.BalanceRepository.SubtractUsed(txCtx, balance.ID, request.TotalDays); err != nil {
				return fmt.Errorf("failed to restore leave balance: %w", err)
			}

			if err := s.audits.Create(txCtx, audit.Entry{
				ActorID:    actorID,
				Action:     audit.ActionBalanceRestored,
				EmployeeID: request.EmployeeID,
				Date:       request.StartDate,
				Details:    audit.Details{"request_id": request.ID, "total_days": request.TotalDays},
			}); err != nil {
				return fmt.Errorf("failed to write audit entry: %w", err)
			}
		}

		if err := s.RequestRepository.UpdateStatus(txCtx, request.ID, target, actorID, now, nil); err != nil {
			return fmt.Errorf("failed to update leave request status: %w", err)
		}

		return s.audits.Create(txCtx, audit.Entry{
			ActorID:    actorID,
			Action:     action,
			EmployeeID: request.EmployeeID,
			Date:       request.StartDate,
			Details:    audit.Details{"request_id": request.ID, "was_approved": wasApproved},
		})
	})
	if err != nil {
		return leave.Request{}, err
	}

	return s.getRequest(ctx, requestID)
}

// GetRequest fetches a leave request by ID.
func (s *Service) GetRequest(ctx context.Context, requestID string) (leave.Request, error) {
	return s.getRequest(ctx, requestID)
}

// ListRequests lists an employee's requests, optionally filtered by status.
func (s *Service) ListRequests(ctx context.Context, employeeID string, statuses []leave.RequestStatus) ([]leave.Request, error) {
	return s.RequestRepository.ListByEmployee(ctx, employeeID, statuses)
}

// ListBalances lists an employee's ledger rows for a year.
func (s *Service) ListBalances(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	return s.BalanceRepository.ListByEmployee(ctx, employeeID, year)
}

func (s *Service) getRequest(ctx context.Context, requestID string) (leave.Request, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

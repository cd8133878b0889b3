package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/config"
	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/employee"
	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	domainShift "github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/service/holiday"
	shiftService "github.com/chronohr/attendance-backend-go/internal/service/shift"
	"github.com/jackc/pgx/v5"
)

// Service owns AttendanceRecord reconciliation: it is the only writer of
// records and of every derived field on them.
type Service struct {
	cfg config.CalculationConfig
	attendance.RecordRepository
	attendance.PunchLogRepository
	employee.Repository
	leaveRequests leave.RequestRepository
	resolver      *shiftService.Resolver
	holidays      holiday.Checker
}

func NewService(
	cfg config.CalculationConfig,
	recordRepo attendance.RecordRepository,
	punchRepo attendance.PunchLogRepository,
	employeeRepo employee.Repository,
	leaveRequests leave.RequestRepository,
	resolver *shiftService.Resolver,
	holidays holiday.Checker,
) *Service {
	return &Service{
		cfg:                cfg,
		RecordRepository:   recordRepo,
		PunchLogRepository: punchRepo,
		Repository:         employeeRepo,
		leaveRequests:      leaveRequests,
		resolver:           resolver,
		holidays:           holidays,
	}
}

// IngestPunches appends one device sync cycle to the punch log. Punches are
// stored PENDING; reconciliation happens in ProcessPendingPunches or on an
// explicit Reconcile call.
func (s *Service) IngestPunches(ctx context.Context, deviceID string, req attendance.IngestPunchesRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	logs := make([]attendance.PunchLog, 0, len(req.Punches))
	for _, p := range req.Punches {
		emp, err := s.Repository.GetByCode(ctx, p.EmployeeCode)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				slog.Warn("Ignoring punch for unknown employee code",
					"employee_code", p.EmployeeCode, "device_id", deviceID)
				continue
			}
			return 0, fmt.Errorf("failed to look up employee by code: %w", err)
		}

		ts, _ := time.Parse(time.RFC3339, p.Timestamp)
		logs = append(logs, attendance.PunchLog{
			EmployeeID:       emp.ID,
			EmployeeCode:     p.EmployeeCode,
			DeviceID:         deviceID,
			Timestamp:        ts.UTC(),
			Type:             attendance.PunchType(p.Type),
			ProcessingStatus: attendance.PunchStatusPending,
		})
	}

	if len(logs) == 0 {
		return 0, nil
	}

	if err := s.PunchLogRepository.CreateBatch(ctx, logs); err != nil {
		return 0, fmt.Errorf("failed to store punch batch: %w", err)
	}

	return len(logs), nil
}

// Reconcile rebuilds the attendance record of one employee-day from its
// stored punches. It is idempotent: the same punch set always produces the
// same record. Concurrent writers are serialized by the record version;
// conflicting updates are retried up to the configured bound.
func (s *Service) Reconcile(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	date = truncateToDay(date)

	if date.After(truncateToDay(time.Now().UTC())) {
		return attendance.Record{}, attendance.ErrFutureDate
	}

	punches, err := s.PunchLogRepository.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to list punches: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < s.cfg.ReconcileRetries; attempt++ {
		record, err := s.reconcileOnce(ctx, employeeID, date, punches)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, attendance.ErrConflict) {
			return attendance.Record{}, err
		}
		lastErr = err
		slog.Debug("Reconciliation conflict, retrying",
			"employee_id", employeeID, "date", date.Format("2006-01-02"), "attempt", attempt+1)
	}

	return attendance.Record{}, lastErr
}

func (s *Service) reconcileOnce(ctx context.Context, employeeID string, date time.Time, punches []attendance.PunchLog) (attendance.Record, error) {
	emp, err := s.Repository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, employee.ErrEmployeeNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get employee: %w", err)
	}

	normalized := NormalizePunches(punches)
	if normalized.Dropped > 0 {
		slog.Debug("Normalizer dropped mismatched punches",
			"employee_id", employeeID, "date", date.Format("2006-01-02"), "dropped", normalized.Dropped)
	}

	resolved, err := s.resolveShift(ctx, employeeID, date)
	if err != nil {
		return attendance.Record{}, err
	}

	isHoliday, err := s.holidays.IsHoliday(ctx, date, emp.DepartmentID)
	if err != nil {
		return attendance.Record{}, err
	}

	approvedLeave, err := s.leaveRequests.FindApprovedCovering(ctx, employeeID, date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to check approved leave: %w", err)
	}

	metrics := Calculate(CalculationInput{
		Date:            date,
		Pairs:           normalized.Pairs,
		Shift:           resolved,
		IsHoliday:       isHoliday,
		OnApprovedLeave: approvedLeave != nil,
		IsWeekend:       s.cfg.IsWeekend(date),
	})

	record := attendance.Record{
		EmployeeID: employeeID,
		Date:       date,
		Pairs:      normalized.Pairs,
		IsHoliday:  isHoliday,
		IsWeekend:  s.cfg.IsWeekend(date),
	}
	if resolved != nil {
		record.ShiftID = &resolved.ID
	}
	applyMetrics(&record, metrics)

	existing, err := s.RecordRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get existing record: %w", err)
	}

	if existing == nil {
		return s.RecordRepository.Create(ctx, record)
	}

	record.ID = existing.ID
	record.Version = existing.Version
	record.Notes = existing.Notes
	record.IsManual = existing.IsManual
	return s.RecordRepository.Update(ctx, record)
}

// Recalculate re-derives every computed field of a record from an explicit
// pair set. The correction engine uses this after applying a field diff, so
// approved corrections go through exactly the same math as fresh punches.
func (s *Service) Recalculate(ctx context.Context, record attendance.Record, pairs []attendance.TimePair) (attendance.Record, error) {
	emp, err := s.Repository.GetByID(ctx, record.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, employee.ErrEmployeeNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get employee: %w", err)
	}

	resolved, err := s.resolveShift(ctx, record.EmployeeID, record.Date)
	if err != nil {
		return attendance.Record{}, err
	}

	isHoliday, err := s.holidays.IsHoliday(ctx, record.Date, emp.DepartmentID)
	if err != nil {
		return attendance.Record{}, err
	}

	approvedLeave, err := s.leaveRequests.FindApprovedCovering(ctx, record.EmployeeID, record.Date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to check approved leave: %w", err)
	}

	metrics := Calculate(CalculationInput{
		Date:            record.Date,
		Pairs:           pairs,
		Shift:           resolved,
		IsHoliday:       isHoliday,
		OnApprovedLeave: approvedLeave != nil,
		IsWeekend:       s.cfg.IsWeekend(record.Date),
	})

	record.Pairs = pairs
	record.IsHoliday = isHoliday
	record.IsWeekend = s.cfg.IsWeekend(record.Date)
	if resolved != nil {
		record.ShiftID = &resolved.ID
	} else {
		record.ShiftID = nil
	}
	applyMetrics(&record, metrics)

	return s.RecordRepository.Update(ctx, record)
}

// ProcessPendingPunches groups pending punch logs per employee-day and
// reconciles each group. Failures are recorded on the punch rows and do not
// stop the batch.
func (s *Service) ProcessPendingPunches(ctx context.Context) error {
	pending, err := s.PunchLogRepository.ListPending(ctx, 5000)
	if err != nil {
		return fmt.Errorf("failed to list pending punches: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	type group struct {
		employeeID string
		date       time.Time
		ids        []string
	}

	groups := make(map[string]*group)
	for _, punch := range pending {
		date := truncateToDay(punch.Timestamp)
		key := punch.EmployeeID + "|" + date.Format("2006-01-02")
		g, ok := groups[key]
		if !ok {
			g = &group{employeeID: punch.EmployeeID, date: date}
			groups[key] = g
		}
		g.ids = append(g.ids, punch.ID)
	}

	processed := 0
	for _, g := range groups {
		// weekend days with no shift requiring weekend work are not
		// materialized; the punches themselves still get processed because
		// their presence means the employee worked that day
		if _, err := s.Reconcile(ctx, g.employeeID, g.date); err != nil {
			slog.Error("Failed to reconcile employee-day",
				"employee_id", g.employeeID, "date", g.date.Format("2006-01-02"), "error", err)
			if markErr := s.PunchLogRepository.MarkError(ctx, g.ids, err.Error()); markErr != nil {
				slog.Error("Failed to mark punches as errored", "error", markErr)
			}
			continue
		}
		if err := s.PunchLogRepository.MarkProcessed(ctx, g.ids); err != nil {
			return fmt.Errorf("failed to mark punches processed: %w", err)
		}
		processed++
	}

	slog.Info("Processed pending punches",
		"groups", len(groups), "reconciled", processed, "punches", len(pending))
	return nil
}

// GetRecord fetches one record by ID.
func (s *Service) GetRecord(ctx context.Context, id string) (attendance.Record, error) {
	record, err := s.RecordRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

// ListRecords lists records with filters and pagination.
func (s *Service) ListRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	return s.RecordRepository.List(ctx, filter)
}

func (s *Service) resolveShift(ctx context.Context, employeeID string, date time.Time) (*domainShift.Shift, error) {
	resolved, err := s.resolver.Resolve(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if resolved == nil && s.cfg.DefaultShiftID != "" {
		fallback, err := s.resolver.ShiftRepository.GetByID(ctx, s.cfg.DefaultShiftID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to get default shift: %w", err)
		}
		return &fallback, nil
	}
	return resolved, nil
}

func applyMetrics(record *attendance.Record, m Metrics) {
	record.TotalMinutes = m.TotalMinutes
	record.BreakMinutes = m.BreakMinutes
	record.WorkMinutes = m.WorkMinutes
	record.OvertimeMinutes = m.OvertimeMinutes
	record.UndertimeMinutes = m.UndertimeMinutes
	record.FirstIn = m.FirstIn
	record.LastOut = m.LastOut
	record.Status = m.Status
	record.LateMinutes = m.LateMinutes
	record.EarlyDepartureMinutes = m.EarlyDepartureMinutes
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

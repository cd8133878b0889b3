package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/config"
	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/employee"
	"github.com/chronohr/attendance-backend-go/internal/domain/summary"
	"github.com/chronohr/attendance-backend-go/internal/service/holiday"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// Service generates monthly attendance summaries. Summaries are derived data:
// generation reads records, never writes them, and upserts the rollup so
// regeneration is idempotent.
type Service struct {
	cfg config.CalculationConfig
	summary.Repository
	records   attendance.RecordRepository
	employees employee.Repository
	holidays  holiday.Checker
}

func NewService(
	cfg config.CalculationConfig,
	summaryRepo summary.Repository,
	recordRepo attendance.RecordRepository,
	employeeRepo employee.Repository,
	holidays holiday.Checker,
) *Service {
	return &Service{
		cfg:        cfg,
		Repository: summaryRepo,
		records:    recordRepo,
		employees:  employeeRepo,
		holidays:   holidays,
	}
}

// Generate builds and stores the summary for one employee-month.
func (s *Service) Generate(ctx context.Context, employeeID string, year, month int) (summary.MonthlySummary, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.MonthlySummary{}, employee.ErrEmployeeNotFound
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to get employee: %w", err)
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	records, err := s.records.ListByEmployeeRange(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to list records: %w", err)
	}

	holidays, err := s.holidays.HolidaysInRange(ctx, monthStart, monthEnd, emp.DepartmentID)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	built := Build(BuildInput{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Records:    records,
		Holidays:   holidays,
		IsWeekend:  s.cfg.IsWeekend,
		Today:      time.Now().UTC(),
	})

	stored, err := s.Repository.Upsert(ctx, built)
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to upsert summary: %w", err)
	}

	return stored, nil
}

// GenerateAll regenerates summaries for every active employee in parallel.
// Each employee-month is independent, so a bounded worker pool is safe; any
// single failure aborts the batch.
func (s *Service) GenerateAll(ctx context.Context, year, month int) (int, error) {
	active, err := s.employees.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.AggregationWorkers)

	for _, emp := range active {
		emp := emp
		g.Go(func() error {
			if _, err := s.Generate(gCtx, emp.ID, year, month); err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	slog.Info("Generated monthly summaries", "year", year, "month", month, "employees", len(active))
	return len(active), nil
}

// GetSummary fetches a stored summary.
func (s *Service) GetSummary(ctx context.Context, employeeID string, year, month int) (summary.MonthlySummary, error) {
	stored, err := s.Repository.GetByEmployeeMonth(ctx, employeeID, year, month)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.MonthlySummary{}, summary.ErrSummaryNotFound
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to get summary: %w", err)
	}
	return stored, nil
}

// BuildInput carries everything the pure accumulation needs.
type BuildInput struct {
	EmployeeID string
	Year       int
	Month      int
	Records    []attendance.Record
	Holidays   map[string]bool
	IsWeekend  func(time.Time) bool
	Today      time.Time
}

// Build accumulates one employee-month into a summary. It is pure so the
// bucketing rules can be tested without a database.
func Build(in BuildInput) summary.MonthlySummary {
	out := summary.MonthlySummary{
		EmployeeID:  in.EmployeeID,
		Year:        in.Year,
		Month:       in.Month,
		GeneratedAt: in.Today,
	}

	byDay := make(map[string]*attendance.Record, len(in.Records))
	for i := range in.Records {
		r := &in.Records[i]
		byDay[r.Date.Format("2006-01-02")] = r

		out.TotalWorkMinutes += r.WorkMinutes
		out.TotalBreakMinutes += r.BreakMinutes
		out.TotalOvertimeMinutes += r.OvertimeMinutes
		out.TotalUndertimeMinutes += r.UndertimeMinutes

		if r.FirstIn != nil && (out.EarliestIn == nil || clockMinutes(*r.FirstIn) < clockMinutes(*out.EarliestIn)) {
			out.EarliestIn = r.FirstIn
		}
		if r.LastOut != nil && (out.LatestOut == nil || clockMinutes(*r.LastOut) > clockMinutes(*out.LatestOut)) {
			out.LatestOut = r.LastOut
		}
	}

	monthStart := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(in.Today.Year(), in.Today.Month(), in.Today.Day(), 0, 0, 0, 0, time.UTC)

	for day := monthStart; day.Month() == time.Month(in.Month); day = day.AddDate(0, 0, 1) {
		if in.IsWeekend(day) {
			continue
		}
		if in.Holidays[day.Format("2006-01-02")] {
			out.HolidayDays++
			continue
		}
		out.WorkingDays++

		record, ok := byDay[day.Format("2006-01-02")]
		if !ok {
			// a working day in the past with no record at all is an absence
			if day.Before(today) {
				out.AbsentDays++
			}
			continue
		}

		switch record.Status {
		case attendance.StatusPresent, attendance.StatusIncomplete:
			out.AttendedDays++
		case attendance.StatusLate:
			out.AttendedDays++
			out.LateDays++
		case attendance.StatusEarlyDeparture:
			out.AttendedDays++
			out.EarlyDays++
		case attendance.StatusHalfDay:
			out.HalfDays++
		case attendance.StatusLeave:
			out.LeaveDays++
		case attendance.StatusHoliday:
			// department-scoped holiday recorded on the day itself
			out.HolidayDays++
			out.WorkingDays--
		case attendance.StatusAbsent:
			out.AbsentDays++
		}
	}

	// Both rates are taken over working days, and average hours over days the
	// employee actually attended in full.
	if out.WorkingDays > 0 {
		out.AttendancePercentage = round2(float64(out.AttendedDays) / float64(out.WorkingDays) * 100)
		score := 100 - float64(out.LateDays+out.EarlyDays)/float64(out.WorkingDays)*100
		if score < 0 {
			score = 0
		}
		out.PunctualityScore = round2(score)
	}
	if out.AttendedDays > 0 {
		out.AverageWorkHours = round2(float64(out.TotalWorkMinutes) / 60 / float64(out.AttendedDays))
	}

	return out
}

func clockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

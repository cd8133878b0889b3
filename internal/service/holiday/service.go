package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/teambition/rrule-go"
)

// Checker is the narrow lookup interface consumed by the calculator, the
// leave day-counter and the monthly aggregator.
type Checker interface {
	IsHoliday(ctx context.Context, date time.Time, departmentID *string) (bool, error)
	HolidaysInRange(ctx context.Context, from, to time.Time, departmentID *string) (map[string]bool, error)
}

// Service resolves holiday dates, expanding recurring rules.
type Service struct {
	holiday.Repository
}

func NewService(repo holiday.Repository) *Service {
	return &Service{Repository: repo}
}

// Create adds a holiday to the calendar. A recurrence rule, if present, must
// parse; bad rules are rejected here instead of being skipped at lookup time.
func (s *Service) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	if req.RecurrenceRule != nil {
		if _, err := rrule.StrToRRule(*req.RecurrenceRule); err != nil {
			return holiday.Holiday{}, holiday.ErrInvalidRecurrenceRule
		}
	}

	created, err := s.Repository.Create(ctx, holiday.Holiday{
		Name:           req.Name,
		Date:           date,
		RecurrenceRule: req.RecurrenceRule,
		DepartmentIDs:  req.DepartmentIDs,
		IsActive:       true,
	})
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return created, nil
}

// ListCalendar returns the calendar entries relevant to [from, to]: fixed
// holidays inside the range plus every recurring rule.
func (s *Service) ListCalendar(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	fixed, err := s.Repository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	recurring, err := s.Repository.ListRecurring(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring holidays: %w", err)
	}

	return append(fixed, recurring...), nil
}

// IsHoliday reports whether the date is a holiday applicable to the
// employee's department.
func (s *Service) IsHoliday(ctx context.Context, date time.Time, departmentID *string) (bool, error) {
	days, err := s.HolidaysInRange(ctx, date, date, departmentID)
	if err != nil {
		return false, err
	}
	return days[dayKey(date)], nil
}

// HolidaysInRange returns the set of holiday dates (keyed YYYY-MM-DD) within
// [from, to] applicable to the department. Single-date holidays come straight
// from the calendar; recurring holidays are expanded from their RRULE.
func (s *Service) HolidaysInRange(ctx context.Context, from, to time.Time, departmentID *string) (map[string]bool, error) {
	days := make(map[string]bool)

	fixed, err := s.Repository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	for _, h := range fixed {
		if h.AppliesToDepartment(departmentID) {
			days[dayKey(h.Date)] = true
		}
	}

	recurring, err := s.Repository.ListRecurring(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring holidays: %w", err)
	}
	for _, h := range recurring {
		if !h.AppliesToDepartment(departmentID) {
			continue
		}
		occurrences, err := expandRule(h, from, to)
		if err != nil {
			slog.Warn("Skipping holiday with invalid recurrence rule",
				"holiday_id", h.ID, "rule", *h.RecurrenceRule, "error", err)
			continue
		}
		for _, occ := range occurrences {
			days[dayKey(occ)] = true
		}
	}

	return days, nil
}

func expandRule(h holiday.Holiday, from, to time.Time) ([]time.Time, error) {
	rule, err := rrule.StrToRRule(*h.RecurrenceRule)
	if err != nil {
		return nil, err
	}
	rule.DTStart(h.Date)
	// widen by a day on both ends so date-only boundaries are inclusive
	return rule.Between(from.AddDate(0, 0, -1), to.AddDate(0, 0, 1), true), nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

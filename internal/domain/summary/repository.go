package summary

import "context"

// Repository defines data access for monthly summaries.
type Repository interface {
	// Upsert inserts or replaces the summary keyed by (employee, year, month).
	Upsert(ctx context.Context, summary MonthlySummary) (MonthlySummary, error)

	GetByEmployeeMonth(ctx context.Context, employeeID string, year, month int) (MonthlySummary, error)
	ListByMonth(ctx context.Context, year, month int) ([]MonthlySummary, error)
}

package holiday

import (
	"context"
	"time"
)

// Repository defines data access for the holiday calendar.
type Repository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)

	// ListBetween retrieves active single-date holidays with Date in [from, to].
	ListBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)

	// ListRecurring retrieves active holidays that carry a recurrence rule.
	ListRecurring(ctx context.Context) ([]Holiday, error)
}

package audit

import "context"

// Repository appends audit entries. Entries are never updated or deleted.
type Repository interface {
	Create(ctx context.Context, entry Entry) error
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Entry, error)
}

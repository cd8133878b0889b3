package employee

import "context"

// Repository defines read access to employee reference data.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}

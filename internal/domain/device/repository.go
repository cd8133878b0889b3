package device

import (
	"context"
	"time"
)

// Repository defines data access for the device registry.
type Repository interface {
	GetByCode(ctx context.Context, code string) (Device, error)
	TouchLastSync(ctx context.Context, id string, at time.Time) error
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/device"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

type deviceRepository struct {
	db *database.DB
}

// GetByCode implements device.Repository.
func (r *deviceRepository) GetByCode(ctx context.Context, code string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, device_code, name, location, api_key_hash, status,
			   last_sync_at, is_active, created_at, updated_at
		FROM devices
		WHERE device_code = $1
	`

	var d device.Device
	err := q.QueryRow(ctx, query, code).Scan(
		&d.ID, &d.DeviceCode, &d.Name, &d.Location, &d.APIKeyHash, &d.Status,
		&d.LastSyncAt, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)

	if err != nil {
		return device.Device{}, err
	}

	return d, nil
}

// TouchLastSync implements device.Repository.
func (r *deviceRepository) TouchLastSync(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE devices SET last_sync_at = $1, updated_at = NOW() WHERE id = $2`

	if _, err := q.Exec(ctx, query, at, id); err != nil {
		return fmt.Errorf("failed to update device last sync: %w", err)
	}

	return nil
}

func NewDeviceRepository(db *database.DB) device.Repository {
	return &deviceRepository{db: db}
}

package device

import "time"

// Device statuses
const (
	StatusActive      = "ACTIVE"
	StatusInactive    = "INACTIVE"
	StatusMaintenance = "MAINTENANCE"
)

// Device is a registered time-clock. It authenticates punch deliveries with
// an API key; only the bcrypt hash is stored.
type Device struct {
	ID           string
	DeviceCode   string
	Name         string
	Location     string
	APIKeyHash   string
	Status       string
	LastSyncAt   *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package device

import "errors"

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrInvalidAPIKey  = errors.New("invalid device API key")
)

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/device"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type deviceContextKey struct{}

// DeviceAuth authenticates punch deliveries from time-clock devices using the
// X-Device-Code and X-API-Key headers. The device ID is stored on the request
// context for the handler.
func DeviceAuth(devices device.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			code := r.Header.Get("X-Device-Code")
			apiKey := r.Header.Get("X-API-Key")
			if code == "" || apiKey == "" {
				response.Unauthorized(w, "Missing device credentials")
				return
			}

			d, err := devices.GetByCode(r.Context(), code)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					response.HandleError(w, device.ErrDeviceNotFound)
					return
				}
				response.HandleError(w, err)
				return
			}

			if !d.IsActive || d.Status != device.StatusActive {
				response.HandleError(w, device.ErrDeviceNotFound)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(d.APIKeyHash), []byte(apiKey)); err != nil {
				response.HandleError(w, device.ErrInvalidAPIKey)
				return
			}

			if err := devices.TouchLastSync(r.Context(), d.ID, time.Now().UTC()); err != nil {
				slog.Warn("Failed to update device last sync", "device_id", d.ID, "error", err)
			}

			ctx := context.WithValue(r.Context(), deviceContextKey{}, d.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// DeviceIDFromContext returns the authenticated device ID, if any.
func DeviceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(deviceContextKey{}).(string)
	return id, ok
}

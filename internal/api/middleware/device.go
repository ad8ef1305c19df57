package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/logging"
	service "github.com/cursedbuild/storefront/internal/services"
	"github.com/cursedbuild/storefront/internal/utils/response"
)

type deviceContextKey struct{}

// WithDevice returns a copy of ctx carrying device.
func WithDevice(ctx context.Context, device *service.Device) context.Context {
	return context.WithValue(ctx, deviceContextKey{}, device)
}

func DeviceFromContext(ctx context.Context) (*service.Device, bool) {
	device, ok := ctx.Value(deviceContextKey{}).(*service.Device)
	return device, ok && device != nil
}

type DeviceMiddleware struct {
	devices service.DeviceService
}

func NewDeviceMiddleware(devices service.DeviceService) *DeviceMiddleware {
	return &DeviceMiddleware{devices: devices}
}

// Authenticate resolves the "Authorization: Bearer <device token>" header to the
// device's cart and session.
func (m *DeviceMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		claims, err := m.devices.Verify(tokenParts[1])
		if err != nil {
			logger.Warn("Device token rejected", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		device, err := m.devices.Open(r.Context(), claims.DeviceID)
		if err != nil {
			logger.Error("Failed to open device", slog.String("deviceId", claims.DeviceID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		requestScopedLogger := logger.With(slog.String("deviceId", device.ID))

		ctx := WithDevice(r.Context(), device)
		ctx = logging.WithLogger(ctx, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/cursedbuild/storefront/internal/metrics"
	"github.com/cursedbuild/storefront/internal/models"
	repository "github.com/cursedbuild/storefront/internal/repositories"
	"github.com/cursedbuild/storefront/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Device is the state one browser owns: an in-memory cart and a persisted session.
type Device struct {
	ID   string
	Cart CartService
	Auth AuthService
}

type DeviceService interface {
	Issue(ctx context.Context) (*models.DeviceToken, error)
	Verify(token string) (*models.DeviceClaims, error)
	Open(ctx context.Context, deviceID string) (*Device, error)
}

type deviceEntry struct {
	device   *Device
	lastSeen time.Time
}

// DeviceRegistry hands out device tokens and keeps the live Device for each id.
// Every device persists under its own "device:<id>" namespace of the base store.
type DeviceRegistry struct {
	mu       sync.Mutex
	store    storage.Store
	jwtKey   []byte
	tokenTTL time.Duration
	authOpts []AuthOption
	now      func() time.Time
	devices  map[string]*deviceEntry
}

type DeviceOption func(*DeviceRegistry)

// WithAuthOptions is applied to every AuthService the registry creates.
func WithAuthOptions(opts ...AuthOption) DeviceOption {
	return func(r *DeviceRegistry) { r.authOpts = append(r.authOpts, opts...) }
}

func WithDeviceClock(now func() time.Time) DeviceOption {
	return func(r *DeviceRegistry) { r.now = now }
}

func NewDeviceRegistry(store storage.Store, jwtKey []byte, tokenTTL time.Duration, opts ...DeviceOption) *DeviceRegistry {

	r := &DeviceRegistry{
		store:    store,
		jwtKey:   jwtKey,
		tokenTTL: tokenTTL,
		now:      time.Now,
		devices:  make(map[string]*deviceEntry),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *DeviceRegistry) Issue(ctx context.Context) (*models.DeviceToken, error) {

	now := r.now()
	deviceID := uuid.NewString()

	claims := &models.DeviceClaims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   deviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate device token").WithError(err)
	}

	logging.FromContext(ctx).Info("Device token issued", "deviceId", deviceID)

	return &models.DeviceToken{
		DeviceID:  deviceID,
		Token:     token,
		ExpiresIn: int(r.tokenTTL.Seconds()),
	}, nil
}

func (r *DeviceRegistry) Verify(tokenString string) (*models.DeviceClaims, error) {

	claims := &models.DeviceClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return r.jwtKey, nil
	}, jwt.WithTimeFunc(r.now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, errors.UnauthorizedError("Invalid or expired device token").WithError(err)
	}

	if !token.Valid || claims.DeviceID == "" {
		return nil, errors.UnauthorizedError("Invalid device token")
	}

	if _, err := uuid.Parse(claims.DeviceID); err != nil {
		return nil, errors.UnauthorizedError("Invalid device token").WithError(err)
	}

	return claims, nil
}

// Open returns the live Device for deviceID, creating it on first use. Creating
// a device restores its saved session; its cart always starts empty.
func (r *DeviceRegistry) Open(ctx context.Context, deviceID string) (*Device, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.devices[deviceID]; ok {
		entry.lastSeen = r.now()
		return entry.device, nil
	}

	scoped := storage.Namespace(r.store, storage.Key(storage.DeviceKeyPrefix, deviceID))

	opts := append(slices.Clone(r.authOpts), WithRateLimitScope(deviceID))

	auth, err := NewAuthService(ctx, repository.NewAccountRepo(scoped), repository.NewSessionRepo(scoped), opts...)
	if err != nil {
		return nil, err
	}

	device := &Device{ID: deviceID, Cart: NewCartService(), Auth: auth}
	r.devices[deviceID] = &deviceEntry{device: device, lastSeen: r.now()}

	metrics.SetActiveDevices(len(r.devices))
	logging.FromContext(ctx).Debug("Device opened", "deviceId", deviceID, "authenticated", auth.IsAuthenticated())

	return device, nil
}

// Sweep drops devices not opened within idle. Their carts are lost; sessions
// stay in storage and are restored on the next Open.
func (r *DeviceRegistry) Sweep(idle time.Duration) int {

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	evicted := 0

	for id, entry := range r.devices {
		if entry.lastSeen.Before(cutoff) {
			delete(r.devices, id)
			evicted++
		}
	}

	metrics.SetActiveDevices(len(r.devices))

	return evicted
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *DeviceRegistry) RunSweeper(ctx context.Context, idle, interval time.Duration) {

	logger := logging.FromContext(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				logger.Info("Evicted idle devices", "count", n)
			}
		}
	}
}

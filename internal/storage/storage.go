// Package storage is the durable key-value capability the stores persist through.
// Backends live in sub-packages; this package holds the contract and helpers.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed keys. Each store owns its own key so they never contend.
const (
	SessionKey  = "cursed_user"
	AccountsKey = "cursed_users"
)

const DeviceKeyPrefix = "device"

var ErrMalformed = errors.New("malformed stored value")

// Store is a synchronous string-keyed byte store.
// Get reports found=false, with a nil error, for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by backends that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// GetJSON loads key into value. Undecodable payloads are reported as ErrMalformed.
func GetJSON(ctx context.Context, s Store, key string, value any) (bool, error) {
	data, found, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}

	if !found {
		return false, nil
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("%w: key %s: %w", ErrMalformed, key, err)
	}

	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	return s.Set(ctx, key, data)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/cursedbuild/storefront/internal/models"
	"github.com/cursedbuild/storefront/internal/storage"
)

// SessionRepository persists the current session-safe user under storage.SessionKey.
type SessionRepository interface {
	Load(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
}

var ErrNoSession = errors.New("no persisted session")

type sessionRepository struct {
	store storage.Store
}

func NewSessionRepo(store storage.Store) SessionRepository {
	return &sessionRepository{store: store}
}

// Load returns ErrNoSession when nothing usable is stored. A malformed or
// incomplete record is removed so it is not read again.
func (r *sessionRepository) Load(ctx context.Context) (*models.User, error) {

	logger := logging.FromContext(ctx)

	var user models.User

	found, err := storage.GetJSON(ctx, r.store, storage.SessionKey, &user)
	if err != nil && !errors.Is(err, storage.ErrMalformed) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err != nil || (found && !wellFormed(&user)) {
		logger.Warn("Discarding malformed persisted session", "key", storage.SessionKey)

		if delErr := r.store.Delete(ctx, storage.SessionKey); delErr != nil {
			logger.Error("Failed to remove malformed session", "error", delErr.Error())
		}

		return nil, ErrNoSession
	}

	if !found {
		return nil, ErrNoSession
	}

	return &user, nil
}

func (r *sessionRepository) Save(ctx context.Context, user *models.User) error {

	if err := storage.SetJSON(ctx, r.store, storage.SessionKey, user); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {

	if err := r.store.Delete(ctx, storage.SessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

func wellFormed(u *models.User) bool {
	return u.ID != 0 && u.Email != ""
}

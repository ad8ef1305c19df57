package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/cursedbuild/storefront/internal/models"
	"github.com/cursedbuild/storefront/internal/storage"
)

// AccountRepository is the registered-users table, stored as one JSON array under storage.AccountsKey.
type AccountRepository interface {
	List(ctx context.Context) ([]models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Append(ctx context.Context, account models.Account) error
}

var ErrAccountNotFound = errors.New("account not found")

type accountRepository struct {
	store storage.Store
}

func NewAccountRepo(store storage.Store) AccountRepository {
	return &accountRepository{store: store}
}

// List returns every account. A corrupt registry is logged and read as empty.
func (r *accountRepository) List(ctx context.Context) ([]models.Account, error) {

	var accounts []models.Account

	_, err := storage.GetJSON(ctx, r.store, storage.AccountsKey, &accounts)
	if err != nil {

		if errors.Is(err, storage.ErrMalformed) {
			logging.FromContext(ctx).Warn("Ignoring malformed account registry", "error", err.Error())
			return []models.Account{}, nil
		}

		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	if accounts == nil {
		accounts = []models.Account{}
	}

	return accounts, nil
}

// FindByEmail matches the email exactly.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {

	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], nil
		}
	}

	return nil, ErrAccountNotFound
}

// Append adds account to the end of the registry. Email uniqueness is the caller's check.
func (r *accountRepository) Append(ctx context.Context, account models.Account) error {

	accounts, err := r.List(ctx)
	if err != nil {
		return err
	}

	accounts = append(accounts, account)

	if err := storage.SetJSON(ctx, r.store, storage.AccountsKey, accounts); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}

	return nil
}

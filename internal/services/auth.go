package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/cursedbuild/storefront/internal/metrics"
	"github.com/cursedbuild/storefront/internal/models"
	repository "github.com/cursedbuild/storefront/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

// Same shape as a browser's Date.toISOString().
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
	IsAuthenticated() bool
}

// Auth is the session of one device plus access to that device's account registry.
// The session is held in memory and mirrored to the session repository.
type Auth struct {
	mu       sync.Mutex
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	hasher   PasswordHasher
	limiter  repository.LoginRateLimiter
	scope    string
	policy   *bluemonday.Policy
	now      func() time.Time
	current  *models.User
}

type AuthOption func(*Auth)

func WithPasswordHasher(h PasswordHasher) AuthOption {
	return func(a *Auth) { a.hasher = h }
}

// WithRateLimiter bounds login attempts per email. Without it logins are unlimited.
func WithRateLimiter(l repository.LoginRateLimiter) AuthOption {
	return func(a *Auth) { a.limiter = l }
}

// WithRateLimitScope keys login attempts by scope as well as email.
func WithRateLimitScope(scope string) AuthOption {
	return func(a *Auth) { a.scope = scope }
}

func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *Auth) { a.now = now }
}

// NewAuthService restores a previously saved session, if there is a usable one.
func NewAuthService(ctx context.Context, accounts repository.AccountRepository, sessions repository.SessionRepository, opts ...AuthOption) (*Auth, error) {

	a := &Auth{
		accounts: accounts,
		sessions: sessions,
		hasher:   PlainTextHasher{},
		policy:   bluemonday.StrictPolicy(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	user, err := sessions.Load(ctx)
	switch {
	case err == nil:
		a.current = user
		logging.FromContext(ctx).Debug("Session restored", "userId", user.ID)
	case stdErrors.Is(err, repository.ErrNoSession):
	default:
		return nil, errors.StorageError("Failed to restore session").WithError(err)
	}

	return a, nil
}

func (a *Auth) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	logger := logging.FromContext(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()

	name := cleanName(a.policy, req.Name)
	if name == "" {
		metrics.RecordAuthEvent("register", errors.ErrCodeValidation)
		return nil, errors.AddValidationError("name", "must contain text")
	}

	accounts, err := a.accounts.List(ctx)
	if err != nil {
		metrics.RecordAuthEvent("register", errors.ErrCodeStorage)
		return nil, errors.StorageError("Failed to load accounts").WithError(err)
	}

	var lastID int64

	for _, acc := range accounts {
		if acc.Email == req.Email {
			metrics.RecordAuthEvent("register", errors.ErrCodeDuplicateEmail)
			logger.Warn("Registration with existing email", "email", req.Email)
			return nil, errors.DuplicateEmailError()
		}

		lastID = max(lastID, acc.ID)
	}

	hashed, err := a.hasher.Hash(req.Password)
	if err != nil {
		metrics.RecordAuthEvent("register", errors.ErrCodeInternal)
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	now := a.now().UTC()

	user := models.User{
		ID:        max(now.UnixMilli(), lastID+1),
		Name:      name,
		Email:     req.Email,
		CreatedAt: now.Format(createdAtLayout),
	}

	if err := a.accounts.Append(ctx, models.Account{User: user, Password: hashed}); err != nil {
		metrics.RecordAuthEvent("register", errors.ErrCodeStorage)
		return nil, errors.StorageError("Failed to create account").WithError(err)
	}

	if err := a.startSession(ctx, user); err != nil {
		metrics.RecordAuthEvent("register", errors.ErrCodeStorage)
		return nil, err
	}

	metrics.RecordAuthEvent("register", "success")
	logger.Info("Account registered", "userId", user.ID)

	return &user, nil
}

func (a *Auth) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {

	logger := logging.FromContext(ctx)

	if a.limiter != nil {
		allowed, _, retryAfter, err := a.limiter.CheckLoginRateLimit(ctx, repository.LoginIdentifier(a.scope, req.Email))
		if err != nil {
			metrics.RecordAuthEvent("login", errors.ErrCodeInternal)
			return nil, errors.InternalError("Rate limit check failed").WithError(err)
		}

		if !allowed {
			metrics.RecordAuthEvent("login", errors.ErrCodeTooManyRequests)
			return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
				WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	account, err := a.accounts.FindByEmail(ctx, req.Email)
	if err != nil && !stdErrors.Is(err, repository.ErrAccountNotFound) {
		metrics.RecordAuthEvent("login", errors.ErrCodeStorage)
		return nil, errors.StorageError("Failed to load accounts").WithError(err)
	}

	if account == nil || !a.hasher.Verify(account.Password, req.Password) {
		metrics.RecordAuthEvent("login", errors.ErrCodeInvalidCredentials)
		logger.Warn("Login rejected", "email", req.Email)
		return nil, errors.InvalidCredentialsError()
	}

	user := account.User

	if err := a.startSession(ctx, user); err != nil {
		metrics.RecordAuthEvent("login", errors.ErrCodeStorage)
		return nil, err
	}

	metrics.RecordAuthEvent("login", "success")
	logger.Info("User logged in", "userId", user.ID)

	return &user, nil
}

// Logout drops the in-memory session even when removing the saved copy fails.
func (a *Auth) Logout(ctx context.Context) error {

	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = nil

	if err := a.sessions.Clear(ctx); err != nil {
		metrics.RecordAuthEvent("logout", errors.ErrCodeStorage)
		return errors.StorageError("Failed to clear session").WithError(err)
	}

	metrics.RecordAuthEvent("logout", "success")

	return nil
}

func (a *Auth) CurrentUser() *models.User {

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return nil
	}

	user := *a.current

	return &user
}

func (a *Auth) IsAuthenticated() bool {

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.current != nil
}

// caller holds a.mu
func (a *Auth) startSession(ctx context.Context, user models.User) error {

	if err := a.sessions.Save(ctx, &user); err != nil {
		return errors.StorageError("Failed to save session").WithError(err)
	}

	a.current = &user

	return nil
}

// cleanName strips markup but keeps the text as typed; Sanitize escapes entities
// which the JSON layer does not need.
func cleanName(policy *bluemonday.Policy, name string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(name)))
}

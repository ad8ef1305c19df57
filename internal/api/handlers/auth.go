package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cursedbuild/storefront/internal/api/middleware"
	"github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/cursedbuild/storefront/internal/models"
	service "github.com/cursedbuild/storefront/internal/services"
	"github.com/cursedbuild/storefront/internal/utils"
	"github.com/cursedbuild/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	validator *validator.Validate
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{validator: validator.New()}
}

func authFromContext(w http.ResponseWriter, r *http.Request) (service.AuthService, *slog.Logger, bool) {

	logger := logging.FromContext(r.Context())

	device, ok := middleware.DeviceFromContext(r.Context())
	if !ok {
		logger.Warn("Auth access without a device")
		response.Error(w, errors.UnauthorizedError("Device token required"))
		return nil, logger, false
	}

	return device.Auth, logger, true
}

func session(auth service.AuthService) models.SessionResponse {
	user := auth.CurrentUser()

	return models.SessionResponse{Authenticated: user != nil, User: user}
}

// Register godoc
//	@Summary		Register an account
//	@Description	Creates an account on this device and signs it in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			account	body		models.RegisterRequest	true	"Name, email and password"
//	@Success		201		{object}	models.SessionResponse	"Signed-in session"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"User with this email already exists"
//	@Security		BearerAuth
//	@Router			/auth/register [post]
func (h *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		auth, logger, ok := authFromContext(w, r)
		if !ok {
			return
		}

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := auth.Register(r.Context(), &req)
		if err != nil {
			logger.Warn("User registration failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, models.SessionResponse{Authenticated: true, User: user})
	}
}

// Login godoc
//	@Summary		Sign in
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Email and password"
//	@Success		200			{object}	models.SessionResponse	"Signed-in session"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid email or password"
//	@Failure		429			{object}	response.ErrorResponse	"Too many login attempts"
//	@Security		BearerAuth
//	@Router			/auth/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		auth, logger, ok := authFromContext(w, r)
		if !ok {
			return
		}

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := auth.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.SessionResponse{Authenticated: true, User: user})
	}
}

// Logout godoc
//	@Summary		Sign out
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	models.SessionResponse	"Anonymous session"
//	@Failure		500	{object}	response.ErrorResponse	"Failed to clear session"
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		auth, logger, ok := authFromContext(w, r)
		if !ok {
			return
		}

		if err := auth.Logout(r.Context()); err != nil {
			logger.Error("Logout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User logged out")
		response.Success(w, http.StatusOK, models.SessionResponse{Authenticated: false})
	}
}

// Me godoc
//	@Summary		Current session
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	models.SessionResponse	"Session, anonymous or signed in"
//	@Failure		401	{object}	response.ErrorResponse	"Device token required"
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *AuthHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		auth, _, ok := authFromContext(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, session(auth))
	}
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cursedbuild/storefront/internal/api/handlers"
	appErrors "github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/models"
	service "github.com/cursedbuild/storefront/internal/services"
	"github.com/cursedbuild/storefront/internal/services/mocks"
	"github.com/cursedbuild/storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testUser = &models.User{ID: 1704164645006, Name: "Steve", Email: "a@x.com", CreatedAt: "2024-01-02T03:04:05.006Z"}

func authRequest(t *testing.T, method, target string, body any, device *service.Device) *http.Request {
	t.Helper()

	buf := &bytes.Buffer{}
	if body != nil {
		require.NoError(t, json.NewEncoder(buf).Encode(body))
	}

	return testutils.CreateTestRequestWithDevice(method, target, buf, device, nil)
}

func TestAuthHandler_Register(t *testing.T) {
	handler := handlers.NewAuthHandler()

	t.Run("Success - User Registration", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		registerReq := models.RegisterRequest{Name: "Steve", Email: "a@x.com", Password: "secret", ConfirmPassword: "secret"}

		// did the handler pass the right data to the service?
		auth.On("Register", mock.Anything, mock.MatchedBy(func(r *models.RegisterRequest) bool {
			return r.Email == registerReq.Email && r.Name == registerReq.Name && r.Password == registerReq.Password
		})).Return(testUser, nil).Once()

		w := httptest.NewRecorder()
		handler.Register()(w, authRequest(t, http.MethodPost, "/api/v1/auth/register", registerReq, device))

		assert.Equal(t, http.StatusCreated, w.Code)
		var got models.SessionResponse
		resp := decodeData(t, w, &got)
		assert.True(t, resp.Success)
		assert.True(t, got.Authenticated)
		assert.Equal(t, testUser, got.User)
		assert.NotContains(t, w.Body.String(), "secret")
	})

	t.Run("Failure - Duplicate email", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		registerReq := models.RegisterRequest{Name: "Steve", Email: "a@x.com", Password: "secret", ConfirmPassword: "secret"}

		auth.On("Register", mock.Anything, mock.Anything).Return(nil, appErrors.DuplicateEmailError()).Once()

		w := httptest.NewRecorder()
		handler.Register()(w, authRequest(t, http.MethodPost, "/api/v1/auth/register", registerReq, device))

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeData(t, w, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeDuplicateEmail, resp.Error.Code)
		assert.Equal(t, "User with this email already exists", resp.Error.Message)
	})

	invalid := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"Short password", models.RegisterRequest{Name: "Steve", Email: "a@x.com", Password: "12345", ConfirmPassword: "12345"}},
		{"Passwords differ", models.RegisterRequest{Name: "Steve", Email: "a@x.com", Password: "secret", ConfirmPassword: "secreT"}},
		{"Bad email", models.RegisterRequest{Name: "Steve", Email: "not-an-email", Password: "secret", ConfirmPassword: "secret"}},
		{"Missing name", models.RegisterRequest{Email: "a@x.com", Password: "secret", ConfirmPassword: "secret"}},
	}

	for _, tc := range invalid {
		t.Run("Failure - "+tc.name, func(t *testing.T) {
			auth := mocks.NewMockAuthService(t)
			device := &service.Device{ID: "d1", Auth: auth}

			w := httptest.NewRecorder()
			handler.Register()(w, authRequest(t, http.MethodPost, "/api/v1/auth/register", tc.req, device))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeData(t, w, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
			auth.AssertNotCalled(t, "Register")
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	handler := handlers.NewAuthHandler()
	loginReq := models.LoginRequest{Email: "a@x.com", Password: "secret"}

	t.Run("Success", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		auth.On("Login", mock.Anything, &loginReq).Return(testUser, nil).Once()

		w := httptest.NewRecorder()
		handler.Login()(w, authRequest(t, http.MethodPost, "/api/v1/auth/login", loginReq, device))

		assert.Equal(t, http.StatusOK, w.Code)
		var got models.SessionResponse
		decodeData(t, w, &got)
		assert.True(t, got.Authenticated)
		assert.Equal(t, testUser, got.User)
	})

	t.Run("Failure - Invalid credentials", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		auth.On("Login", mock.Anything, mock.Anything).Return(nil, appErrors.InvalidCredentialsError()).Once()

		w := httptest.NewRecorder()
		handler.Login()(w, authRequest(t, http.MethodPost, "/api/v1/auth/login", loginReq, device))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeData(t, w, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Invalid email or password", resp.Error.Message)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		auth.On("Login", mock.Anything, mock.Anything).
			Return(nil, appErrors.TooManyRequestsError("Too many login attempts. Please try again later.").WithDetail("retry after 5 seconds")).Once()

		w := httptest.NewRecorder()
		handler.Login()(w, authRequest(t, http.MethodPost, "/api/v1/auth/login", loginReq, device))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		resp := decodeData(t, w, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, []string{"retry after 5 seconds"}, resp.Error.Details)
	})

	t.Run("Failure - Missing password", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}

		w := httptest.NewRecorder()
		handler.Login()(w, authRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@x.com"}, device))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		auth.AssertNotCalled(t, "Login")
	})
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	handler := handlers.NewAuthHandler()

	t.Run("Me - Authenticated", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		auth.On("CurrentUser").Return(testUser).Once()

		w := httptest.NewRecorder()
		handler.Me()(w, authRequest(t, http.MethodGet, "/api/v1/auth/me", nil, device))

		assert.Equal(t, http.StatusOK, w.Code)
		var got models.SessionResponse
		decodeData(t, w, &got)
		assert.True(t, got.Authenticated)
		assert.Equal(t, testUser, got.User)
	})

	t.Run("Me - Anonymous", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		auth.On("CurrentUser").Return(nil).Once()

		w := httptest.NewRecorder()
		handler.Me()(w, authRequest(t, http.MethodGet, "/api/v1/auth/me", nil, device))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"authenticated":false}}`, w.Body.String())
	})

	t.Run("Logout", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		auth.On("Logout", mock.Anything).Return(nil).Once()

		w := httptest.NewRecorder()
		handler.Logout()(w, authRequest(t, http.MethodPost, "/api/v1/auth/logout", nil, device))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"authenticated":false}}`, w.Body.String())
	})

	t.Run("Logout - Storage failure", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		device := &service.Device{ID: "d1", Auth: auth}
		auth.On("Logout", mock.Anything).Return(appErrors.StorageError("Failed to clear session")).Once()

		w := httptest.NewRecorder()
		handler.Logout()(w, authRequest(t, http.MethodPost, "/api/v1/auth/logout", nil, device))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("No device", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Me()(w, testutils.CreateTestRequestWithoutDevice(http.MethodGet, "/api/v1/auth/me", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

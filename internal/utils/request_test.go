package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/models"
	"github.com/cursedbuild/storefront/internal/utils"
	"github.com/cursedbuild/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONBody(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@x.com","password":"secret"}`))

		var dest models.LoginRequest
		err := utils.DecodeJSONBody(httptest.NewRecorder(), req, &dest)

		require.NoError(t, err)
		assert.Equal(t, "a@x.com", dest.Email)
	})

	t.Run("Empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(""))

		var dest models.LoginRequest
		err := utils.DecodeJSONBody(httptest.NewRecorder(), req, &dest)

		assert.ErrorIs(t, err, utils.ErrEmptyBody)
	})

	t.Run("Body over the limit", func(t *testing.T) {
		body := `{"email":"` + strings.Repeat("a", 1<<20) + `@x.com","password":"secret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))

		var dest models.LoginRequest
		err := utils.DecodeJSONBody(httptest.NewRecorder(), req, &dest)

		assert.ErrorIs(t, err, utils.ErrBodyTooLarge)
	})
}

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()

	parse := func(body string) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()

		var dest models.LoginRequest
		ok := utils.ParseAndValidate(req, w, &dest, validate)

		return w, ok
	}

	errorCode := func(t *testing.T, w *httptest.ResponseRecorder) string {
		t.Helper()

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)

		return resp.Error.Code
	}

	t.Run("Valid body", func(t *testing.T) {
		w, ok := parse(`{"email":"a@x.com","password":"secret"}`)

		assert.True(t, ok)
		assert.Equal(t, 0, w.Body.Len())
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		w, ok := parse(`{"email":`)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, errorCode(t, w))
	})

	t.Run("Oversized body", func(t *testing.T) {
		w, ok := parse(`{"email":"` + strings.Repeat("a", 2<<20) + `"}`)

		assert.False(t, ok)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, appErrors.ErrCodePayloadTooLarge, errorCode(t, w))
	})

	t.Run("Validation failure", func(t *testing.T) {
		w, ok := parse(`{"email":"not-an-email","password":"secret"}`)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, errorCode(t, w))
	})
}

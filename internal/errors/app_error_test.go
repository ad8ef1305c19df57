package errors_test

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/cursedbuild/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("Constructors set code and status", func(t *testing.T) {
		cases := []struct {
			err    *appErrors.AppError
			code   string
			status int
		}{
			{appErrors.DuplicateEmailError(), appErrors.ErrCodeDuplicateEmail, http.StatusConflict},
			{appErrors.InvalidCredentialsError(), appErrors.ErrCodeInvalidCredentials, http.StatusUnauthorized},
			{appErrors.StorageError("x"), appErrors.ErrCodeStorage, http.StatusInternalServerError},
			{appErrors.NotFoundError("x"), appErrors.ErrCodeNotFound, http.StatusNotFound},
			{appErrors.TooManyRequestsError("x"), appErrors.ErrCodeTooManyRequests, http.StatusTooManyRequests},
			{appErrors.PayloadTooLargeError("x"), appErrors.ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		}

		for _, tc := range cases {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.status, tc.err.StatusCode)
		}
	})

	t.Run("Wrapped cause is reachable", func(t *testing.T) {
		cause := stdErrors.New("disk full")
		err := fmt.Errorf("saving: %w", appErrors.StorageError("Failed to save").WithError(cause))

		assert.ErrorIs(t, err, cause)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Failed to save", appErr.Message)
	})

	t.Run("Is compares codes", func(t *testing.T) {
		err := fmt.Errorf("register: %w", appErrors.DuplicateEmailError())

		assert.ErrorIs(t, err, appErrors.DuplicateEmailError())
		assert.NotErrorIs(t, err, appErrors.InvalidCredentialsError())
	})

	t.Run("Plain errors are not app errors", func(t *testing.T) {
		_, ok := appErrors.IsAppError(stdErrors.New("boom"))
		assert.False(t, ok)
	})

	t.Run("Field validation message", func(t *testing.T) {
		err := appErrors.AddValidationError("email", "must be valid").WithDetail("got ''")

		assert.Equal(t, "Invalid field 'email': must be valid", err.Error())
		assert.Equal(t, "got ''", err.Detail)
	})
}

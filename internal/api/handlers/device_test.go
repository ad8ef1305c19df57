package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cursedbuild/storefront/internal/api/handlers"
	appErrors "github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/models"
	"github.com/cursedbuild/storefront/internal/services/mocks"
	"github.com/cursedbuild/storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeviceHandler_IssueToken(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		devices := mocks.NewMockDeviceService(t)
		handler := handlers.NewDeviceHandler(devices)

		token := &models.DeviceToken{DeviceID: "d1", Token: "signed", ExpiresIn: 3600}
		devices.On("Issue", mock.Anything).Return(token, nil).Once()

		req := testutils.CreateTestRequestWithoutDevice(http.MethodPost, "/api/v1/devices", nil, nil)
		w := httptest.NewRecorder()

		handler.IssueToken()(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got models.DeviceToken
		resp := decodeData(t, w, &got)
		assert.True(t, resp.Success)
		assert.Equal(t, *token, got)
	})

	t.Run("Failure - Signing error", func(t *testing.T) {
		devices := mocks.NewMockDeviceService(t)
		handler := handlers.NewDeviceHandler(devices)

		devices.On("Issue", mock.Anything).
			Return(nil, appErrors.InternalError("Failed to generate device token").WithError(errors.New("bad key"))).Once()

		req := testutils.CreateTestRequestWithoutDevice(http.MethodPost, "/api/v1/devices", nil, nil)
		w := httptest.NewRecorder()

		handler.IssueToken()(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeData(t, w, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeInternal, resp.Error.Code)
	})
}

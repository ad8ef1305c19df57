package testutils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/cursedbuild/storefront/internal/api/middleware"
	"github.com/cursedbuild/storefront/internal/logging"
	service "github.com/cursedbuild/storefront/internal/services"
)

// CreateTestRequestWithDevice builds a request as it looks after the device middleware ran.
func CreateTestRequestWithDevice(method, target string, body io.Reader, device *service.Device, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutDevice(method, target, body, pathParams)

	return req.WithContext(middleware.WithDevice(req.Context(), device))
}

func CreateTestRequestWithoutDevice(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	ctx := logging.WithLogger(context.Background(), logging.Discard())

	return req.WithContext(ctx)
}

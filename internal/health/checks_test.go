package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cursedbuild/storefront/internal/config"
	"github.com/cursedbuild/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingStore struct {
	storage.Store
	err error
}

func (p pingStore) Ping(context.Context) error { return p.err }

func TestNewHealthHandler(t *testing.T) {

	t.Run("Storage reachable", func(t *testing.T) {
		cfg := &config.Config{Storage: config.Storage{Driver: "memory"}}

		h, err := NewHealthHandler(cfg, pingStore{Store: storage.NewMemoryStore()})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		h.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"OK"`)
	})

	t.Run("Storage down", func(t *testing.T) {
		cfg := &config.Config{Storage: config.Storage{Driver: "sqlite"}}

		h, err := NewHealthHandler(cfg, pingStore{Store: storage.NewMemoryStore(), err: errors.New("disk gone")})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		h.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "disk gone")
	})
}

package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cursedbuild/storefront/internal/storage"
	"github.com/cursedbuild/storefront/internal/storage/sqlitestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func InitTestStore(t *testing.T, path string) storage.Store {
	t.Helper()

	s, err := sqlitestore.Open(path)
	require.NoError(t, err, "failed to open sqlite store")
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s := InitTestStore(t, ":memory:")

	t.Run("Missing key", func(t *testing.T) {
		v, found, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, v)
	})

	t.Run("Upsert", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, storage.SessionKey, []byte(`{"id":1}`)))
		require.NoError(t, s.Set(ctx, storage.SessionKey, []byte(`{"id":2}`)))

		v, found, err := s.Get(ctx, storage.SessionKey)
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `{"id":2}`, string(v))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "tmp", []byte("x")))
		require.NoError(t, s.Delete(ctx, "tmp"))
		require.NoError(t, s.Delete(ctx, "tmp"))

		_, found, err := s.Get(ctx, "tmp")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Ping", func(t *testing.T) {
		pinger, ok := s.(storage.Pinger)
		require.True(t, ok)
		assert.NoError(t, pinger.Ping(ctx))
	})
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storefront.db")

	first, err := sqlitestore.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, storage.AccountsKey, []byte(`[]`)))
	require.NoError(t, first.Close())

	second := InitTestStore(t, path)

	v, found, err := second.Get(ctx, storage.AccountsKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[]`), v)
}

package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/cursedbuild/storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// decodeData unwraps the APIResponse envelope and decodes its data into dest.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	if dest != nil && resp.Data != nil {
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}

	return resp
}

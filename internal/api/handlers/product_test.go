package handlers_test

import (
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
	"github.com/stretchr/testify/require"
)

func TestProductHandler_ListProducts(t *testing.T) {

	t.Run("Success - Query is passed as a filter", func(t *testing.T) {
		catalog := mocks.NewMockCatalogService(t)
		handler := handlers.NewProductHandler(catalog)

		expected := []models.Product{{ID: 3, Name: "Economy Master", Category: models.CategoryPlugin, Price: "$24.99"}}
		catalog.On("List", models.ProductFilter{Search: "eco", Category: "Plugin", SortBy: "price", Order: "desc"}).
			Return(expected).Once()

		req := testutils.CreateTestRequestWithoutDevice(http.MethodGet, "/api/v1/products?search=eco&category=Plugin&sort=price&order=desc", nil, nil)
		w := httptest.NewRecorder()

		handler.ListProducts()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []models.Product
		decodeData(t, w, &got)
		assert.Equal(t, expected, got)
	})

	t.Run("Success - Whole catalog", func(t *testing.T) {
		handler := handlers.NewProductHandler(service.NewCatalogService())

		req := testutils.CreateTestRequestWithoutDevice(http.MethodGet, "/api/v1/products", nil, nil)
		w := httptest.NewRecorder()

		handler.ListProducts()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []models.Product
		decodeData(t, w, &got)
		require.Len(t, got, 6)
		assert.Equal(t, "Economy Master", got[0].Name)
		assert.Equal(t, "Tech & Magic", got[5].Name)
	})

	for _, query := range []string{"category=Shader", "sort=rating", "order=up"} {
		t.Run("Failure - Invalid "+query, func(t *testing.T) {
			catalog := mocks.NewMockCatalogService(t)
			handler := handlers.NewProductHandler(catalog)

			req := testutils.CreateTestRequestWithoutDevice(http.MethodGet, "/api/v1/products?"+query, nil, nil)
			w := httptest.NewRecorder()

			handler.ListProducts()(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeData(t, w, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
			catalog.AssertNotCalled(t, "List")
		})
	}
}

func TestProductHandler_GetProduct(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		handler := handlers.NewProductHandler(service.NewCatalogService())

		req := testutils.CreateTestRequestWithoutDevice(http.MethodGet, "/api/v1/products/2", nil, map[string]string{"id": "2"})
		w := httptest.NewRecorder()

		handler.GetProduct()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got models.Product
		decodeData(t, w, &got)
		assert.Equal(t, "Nether Dimension Pack", got.Name)
		assert.Equal(t, "🔥", got.Image)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		handler := handlers.NewProductHandler(service.NewCatalogService())

		req := testutils.CreateTestRequestWithoutDevice(http.MethodGet, "/api/v1/products/99", nil, map[string]string{"id": "99"})
		w := httptest.NewRecorder()

		handler.GetProduct()(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failure - Invalid id", func(t *testing.T) {
		catalog := mocks.NewMockCatalogService(t)
		handler := handlers.NewProductHandler(catalog)

		req := testutils.CreateTestRequestWithoutDevice(http.MethodGet, "/api/v1/products/abc", nil, map[string]string{"id": "abc"})
		w := httptest.NewRecorder()

		handler.GetProduct()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		catalog.AssertNotCalled(t, "Get")
	})
}

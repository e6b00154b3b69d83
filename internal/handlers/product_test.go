package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelie_back_end/internal/models"
)

func newProductRouter() *gin.Engine {
	r := gin.New()
	r.GET("/api/products", GetProducts)
	r.GET("/api/products/:id", GetProduct)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProducts_ReturnsFullCatalog(t *testing.T) {
	w := get(t, newProductRouter(), "/api/products")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Products, 8)
}

func TestGetProducts_FiltersByCategory(t *testing.T) {
	w := get(t, newProductRouter(), "/api/products?categoria=resina")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Products)
	for _, p := range body.Products {
		assert.Equal(t, models.CategoryResina, p.Category)
	}
}

func TestGetProducts_RejectsUnknownCategory(t *testing.T) {
	w := get(t, newProductRouter(), "/api/products?categoria=ceramica")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProduct_ByID(t *testing.T) {
	w := get(t, newProductRouter(), "/api/products/1")
	require.Equal(t, http.StatusOK, w.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 1, p.ID)
	assert.NotEmpty(t, p.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	w := get(t, newProductRouter(), "/api/products/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProduct_InvalidID(t *testing.T) {
	w := get(t, newProductRouter(), "/api/products/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

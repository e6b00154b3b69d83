package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelie_back_end/internal/catalog"
	"atelie_back_end/internal/models"
)

// GetProducts - GET /api/products?categoria=resina|madeira|mesa
func GetProducts(c *gin.Context) {
	if raw := c.Query("categoria"); raw != "" {
		cat := models.ProductCategory(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria inválida"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": catalog.ByCategory(cat)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": catalog.All()})
}

// GetProduct - GET /api/products/:id
func GetProduct(c *gin.Context) {
	var id int
	if err := bindIntParam(c, "id", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de produto inválido"})
		return
	}

	product, ok := catalog.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	c.JSON(http.StatusOK, product)
}

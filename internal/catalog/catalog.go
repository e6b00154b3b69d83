package catalog

import "atelie_back_end/internal/models"

// Catálogo semeado no build: dados de referência imutáveis.
var products = []models.Product{
	{ID: 1, Name: "Bandeja de Resina Oceano", Image: "/products/bandeja-oceano.jpg", Price: 89.90, Category: models.CategoryResina, Description: "Bandeja artesanal com efeito de ondas em resina epóxi"},
	{ID: 2, Name: "Porta-copos de Resina (kit 4)", Image: "/products/porta-copos.jpg", Price: 49.90, Category: models.CategoryResina, Description: "Kit com 4 porta-copos em resina com pigmento perolado"},
	{ID: 3, Name: "Chaveiro de Resina Floral", Image: "/products/chaveiro-floral.jpg", Price: 24.90, Category: models.CategoryResina, Description: "Chaveiro com flores naturais encapsuladas"},
	{ID: 4, Name: "Tábua de Madeira Nobre", Image: "/products/tabua-nobre.jpg", Price: 119.90, Category: models.CategoryMadeira, Description: "Tábua de servir em madeira teca com acabamento em óleo mineral"},
	{ID: 5, Name: "Petisqueira de Madeira", Image: "/products/petisqueira.jpg", Price: 79.90, Category: models.CategoryMadeira, Description: "Petisqueira giratória em madeira de demolição"},
	{ID: 6, Name: "Suporte de Panela Rústico", Image: "/products/suporte-panela.jpg", Price: 39.90, Category: models.CategoryMadeira, Description: "Descanso de panela em madeira maciça"},
	{ID: 7, Name: "Mesa de Centro River Table", Image: "/products/mesa-river.jpg", Price: 1499.90, Category: models.CategoryMesa, Description: "Mesa de centro com rio de resina azul entre pranchas de pequiá"},
	{ID: 8, Name: "Mesa Lateral de Tronco", Image: "/products/mesa-tronco.jpg", Price: 549.90, Category: models.CategoryMesa, Description: "Mesa lateral em tronco único com base de ferro"},
}

// All retorna uma cópia do catálogo; o seed nunca é mutado.
func All() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

func ByCategory(cat models.ProductCategory) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

func ByID(id int) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

package pricing

import (
	"math"

	"atelie_back_end/internal/models"
)

const (
	// Compras acima de R$ 100 ganham 10% de desconto.
	DiscountThreshold = 100.0
	DiscountRate      = 0.10
)

// Summarize calcula subtotal, desconto e total de um carrinho.
// Função pura: mesmo carrinho, mesmo resultado, sem arredondamento
// intermediário; arredonde só na borda (tela ou payload) com Round2.
func Summarize(items []models.CartItem) models.CartSummary {
	var subtotal float64
	var totalItems int
	for _, item := range items {
		subtotal += item.Product.Price * float64(item.Quantity)
		totalItems += item.Quantity
	}

	var discount float64
	if subtotal > DiscountThreshold {
		discount = subtotal * DiscountRate
	}

	return models.CartSummary{
		Items:      items,
		Subtotal:   subtotal,
		Discount:   discount,
		Total:      subtotal - discount,
		TotalItems: totalItems,
	}
}

// Round2 arredonda para 2 casas decimais na fronteira do sistema.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

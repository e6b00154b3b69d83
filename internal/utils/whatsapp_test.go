package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"atelie_back_end/internal/models"
	"atelie_back_end/internal/pricing"
)

func sampleSummary() models.CartSummary {
	items := []models.CartItem{
		{Product: models.Product{ID: 1, Name: "Bandeja de Resina Oceano", Price: 89.90}, Quantity: 2},
		{Product: models.Product{ID: 4, Name: "Tábua de Corte Rústica", Price: 75.00}, Quantity: 1},
	}
	return pricing.Summarize(items)
}

func TestBuildWhatsAppMessage(t *testing.T) {
	msg := BuildWhatsAppMessage(sampleSummary())

	assert.Contains(t, msg, "*PEDIDO - Ateliê do Chico*")
	assert.Contains(t, msg, "1. Bandeja de Resina Oceano - 2x R$ 89.90")
	assert.Contains(t, msg, "2. Tábua de Corte Rústica - 1x R$ 75.00")
	assert.Contains(t, msg, "📦 Itens: 3")
	assert.Contains(t, msg, "💰 Subtotal: R$ 254.80")
	assert.Contains(t, msg, "🎁 Desconto (10%): -R$ 25.48")
	assert.Contains(t, msg, "*Total: R$ 229.32*")
	assert.True(t, strings.HasSuffix(msg, "Por favor, confirme meu pedido!"))
}

func TestBuildWhatsAppMessage_OmitsDiscountLineBelowThreshold(t *testing.T) {
	summary := pricing.Summarize([]models.CartItem{
		{Product: models.Product{ID: 2, Name: "Porta-copos Âmbar", Price: 45.00}, Quantity: 1},
	})

	msg := BuildWhatsAppMessage(summary)
	assert.NotContains(t, msg, "Desconto")
	assert.Contains(t, msg, "*Total: R$ 45.00*")
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("14991114764", "Olá, tudo bem?")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/14991114764?text="))
	assert.Contains(t, link, "Ol%C3%A1")
	assert.NotContains(t, link, " ")
}

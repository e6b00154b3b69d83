package utils

import (
	"fmt"
	"net/url"
	"strings"

	"atelie_back_end/internal/models"
)

// BuildWhatsAppMessage monta a mensagem de pedido pré-preenchida para o
// caminho alternativo de confirmação via WhatsApp.
func BuildWhatsAppMessage(summary models.CartSummary) string {
	var b strings.Builder

	b.WriteString("🛒 *PEDIDO - Ateliê do Chico*\n\n")
	b.WriteString("*Itens do Pedido:*\n")

	for i, item := range summary.Items {
		fmt.Fprintf(&b, "%d. %s - %dx R$ %.2f\n", i+1, item.Product.Name, item.Quantity, item.Product.Price)
	}

	b.WriteString("\n*Resumo do Pedido:*\n")
	fmt.Fprintf(&b, "📦 Itens: %d\n", summary.TotalItems)
	fmt.Fprintf(&b, "💰 Subtotal: R$ %.2f\n", summary.Subtotal)
	if summary.Discount > 0 {
		fmt.Fprintf(&b, "🎁 Desconto (10%%): -R$ %.2f\n", summary.Discount)
	}
	fmt.Fprintf(&b, "💵 *Total: R$ %.2f*\n\n", summary.Total)
	b.WriteString("Por favor, confirme meu pedido!")

	return b.String()
}

// WhatsAppLink compõe o deep link wa.me com o destino fixo da loja.
func WhatsAppLink(number string, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}

package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/wneessen/go-mail"

	"atelie_back_end/internal/models"
)

// OrderMailer envia comprovantes via SMTP. É o adaptador de produção
// para o checkout; em testes usa-se um stub.
type OrderMailer struct{}

func (OrderMailer) SendOrderConfirmation(to string, details models.OrderDetails) error {
	return SendOrderConfirmation(to, details)
}

// SendOrderConfirmation envia o comprovante do pedido por e-mail.
// Só funciona com SMTP configurado; sem configuração retorna erro e o
// chamador apenas loga; o pedido já está confirmado de qualquer forma.
func SendOrderConfirmation(to string, details models.OrderDetails) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return fmt.Errorf("SMTP_HOST não configurado")
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "pedidos@ateliedochico.com.br"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Confirmação do seu pedido - Ateliê do Chico")
	msg.SetBodyString(mail.TypeTextHTML, OrderConfirmationHTML(details))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Enviando comprovante para", to)
	return client.DialAndSend(msg)
}

// OrderConfirmationHTML gera o corpo HTML da confirmação de pedido.
func OrderConfirmationHTML(details models.OrderDetails) string {
	var rows strings.Builder
	for _, item := range details.Summary.Items {
		fmt.Fprintf(&rows, `
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>R$ %.2f</td>
				<td>R$ %.2f</td>
			</tr>`, item.Product.Name, item.Quantity, item.Product.Price, item.Product.Price*float64(item.Quantity))
	}

	discountRow := ""
	if details.Summary.Discount > 0 {
		discountRow = fmt.Sprintf(`
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Desconto (10%%):</td>
					<td style="padding: 10px;">-R$ %.2f</td>
				</tr>`, details.Summary.Discount)
	}

	entrega := "Retirada no local"
	if details.DeliveryMethod == "entrega" {
		entrega = "Entrega em: " + details.Address
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="pt-BR">
<head>
	<meta charset="UTF-8">
	<title>Confirmação de pedido</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Seu pedido foi confirmado! 🎉</h2>
		<p>Olá,</p>
		<p>Recebemos o seu pedido. %s.</p>

		<h3>Detalhes do pedido</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produto</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantidade</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Preço unitário</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>%s
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">R$ %.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Obrigado pela preferência,<br>
			<strong>Ateliê do Chico</strong>
		</p>
	</div>
</body>
</html>`, entrega, rows.String(), discountRow, details.Summary.Total)
}

// Cliente de terminal da loja: navega o catálogo, monta o carrinho e
// conduz o checkout contra o servidor (PIX, cartão ou dinheiro).
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"atelie_back_end/internal/cart"
	"atelie_back_end/internal/catalog"
	"atelie_back_end/internal/checkout"
	"atelie_back_end/internal/config"
	"atelie_back_end/internal/mercadopago"
	"atelie_back_end/internal/payment"
	"atelie_back_end/internal/storage"
	"atelie_back_end/internal/utils"
)

// consoleNotifier imprime os avisos do checkout direto no terminal.
type consoleNotifier struct{}

func (consoleNotifier) Warn(msg string) { fmt.Println("⚠️ ", msg) }
func (consoleNotifier) Info(msg string) { fmt.Println(msg) }

func main() {
	config.Load()

	backend := storage.NewFileStore(config.CartStorageDir())
	cartStore := cart.NewStore(backend)

	gateway := mercadopago.NewClient(config.CheckoutURL(), config.GatewayTimeout())
	o := checkout.New(cartStore, gateway, mercadopago.NewSimulatedTokenizer(),
		checkout.WithNotifier(consoleNotifier{}),
		checkout.WithMailer(utils.OrderMailer{}),
		checkout.WithWhatsAppNumber(config.WhatsAppNumber()),
	)

	fmt.Println("🛍️  Ateliê do Chico — digite 'ajuda' para ver os comandos")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd, arg := splitCommand(scanner.Text())

		switch cmd {
		case "":
		case "ajuda":
			printHelp()
		case "produtos":
			printCatalog()
		case "add":
			addProduct(cartStore, arg)
		case "tirar":
			if id, err := strconv.Atoi(arg); err == nil {
				cartStore.Remove(id)
			}
		case "menos":
			if id, err := strconv.Atoi(arg); err == nil {
				cartStore.Decrease(id)
			}
		case "guardar":
			if id, err := strconv.Atoi(arg); err == nil {
				cartStore.SaveForLater(id)
			}
		case "devolver":
			if id, err := strconv.Atoi(arg); err == nil {
				cartStore.MoveToCart(id)
			}
		case "descartar":
			if id, err := strconv.Atoi(arg); err == nil {
				cartStore.RemoveSaved(id)
			}
		case "carrinho":
			printCart(o, cartStore)
		case "zap":
			if link, ok := o.WhatsAppOrderLink(); ok {
				fmt.Println("📱", link)
			} else {
				fmt.Println("⚠️  Seu carrinho está vazio!")
			}
		case "pagar":
			if o.GoToPayment() {
				runPayment(o)
			}
		case "sair":
			return
		default:
			fmt.Println("Comando desconhecido:", cmd)
		}

		if o.Closed() {
			printReceipt(o)
			return
		}
	}
}

// runPayment é o sub-loop da tela de pagamento; sai ao voltar, concluir
// ou esgotar a entrada.
func runPayment(o *checkout.Orchestrator) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("💳 Pagamento — método atual:", o.PaymentMethod())

	for o.View() == checkout.ViewPayment {
		fmt.Print("pagamento> ")
		if !scanner.Scan() {
			return
		}
		cmd, arg := splitCommand(scanner.Text())

		switch cmd {
		case "":
		case "metodo":
			setMethod(o, arg)
		case "email":
			o.SetEmail(arg)
		case "entrega":
			setDelivery(o, arg)
		case "endereco":
			o.SetAddress(arg)
		case "numero":
			o.SetCardField(checkout.FieldNumber, arg)
		case "nome":
			o.SetCardField(checkout.FieldName, arg)
		case "validade":
			o.SetCardField(checkout.FieldExpiry, arg)
		case "cvc":
			o.SetCardField(checkout.FieldCVC, arg)
		case "parcelas":
			o.SetCardField(checkout.FieldInstallments, arg)
		case "confirmar":
			confirm(o)
		case "voltar":
			o.BackToCart()
		default:
			fmt.Println("Comando desconhecido:", cmd)
		}
	}
}

func confirm(o *checkout.Orchestrator) {
	if !o.CanConfirm() {
		fmt.Println("⚠️  Preencha email (e endereço, se for entrega) antes de confirmar.")
		return
	}

	if err := o.Confirm(context.Background()); err != nil {
		return
	}

	for field, msg := range o.CardErrors() {
		fmt.Printf("   %s: %s\n", field, msg)
	}
	if qr := o.QRCode(); qr != "" {
		fmt.Println("🔗 QR Code (base64):", qr[:min(40, len(qr))]+"...")
		if url := o.TicketURL(); url != "" {
			fmt.Println("🔗 Ou pague pelo link:", url)
		}
	}
}

func setMethod(o *checkout.Orchestrator, arg string) {
	switch payment.Method(arg) {
	case payment.MethodPix, payment.MethodCard, payment.MethodCash:
		o.SetPaymentMethod(payment.Method(arg))
	default:
		fmt.Println("Métodos: pix | cartao | dinheiro")
	}
}

func setDelivery(o *checkout.Orchestrator, arg string) {
	switch payment.DeliveryMethod(arg) {
	case payment.DeliveryPickup, payment.DeliveryCourier:
		o.SetDeliveryMethod(payment.DeliveryMethod(arg))
	default:
		fmt.Println("Entrega: retirada | entrega")
	}
}

func addProduct(cartStore *cart.Store, arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("Uso: add <id>")
		return
	}
	product, ok := catalog.ByID(id)
	if !ok {
		fmt.Println("⚠️  Produto não encontrado:", id)
		return
	}
	cartStore.Add(product)
	fmt.Printf("✅ %s adicionado ao carrinho\n", product.Name)
}

func printCatalog() {
	for _, p := range catalog.All() {
		fmt.Printf("%2d. [%s] %s — R$ %.2f\n", p.ID, p.Category, p.Name, p.Price)
	}
}

func printCart(o *checkout.Orchestrator, cartStore *cart.Store) {
	summary := o.Summary()
	if len(summary.Items) == 0 {
		fmt.Println("🛒 Carrinho vazio")
	}
	for _, item := range summary.Items {
		fmt.Printf("%2d. %s — %dx R$ %.2f\n", item.Product.ID, item.Product.Name, item.Quantity, item.Product.Price)
	}
	if len(summary.Items) > 0 {
		fmt.Printf("   Subtotal: R$ %.2f\n", summary.Subtotal)
		if summary.Discount > 0 {
			fmt.Printf("   Desconto (10%%): -R$ %.2f\n", summary.Discount)
		}
		fmt.Printf("   Total: R$ %.2f\n", summary.Total)
	}

	if saved := cartStore.SavedItems(); len(saved) > 0 {
		fmt.Println("💾 Guardados para depois:")
		for _, item := range saved {
			fmt.Printf("%2d. %s — %dx R$ %.2f\n", item.Product.ID, item.Product.Name, item.Quantity, item.Product.Price)
		}
	}
}

func printReceipt(o *checkout.Orchestrator) {
	order := o.LastOrder()
	if order == nil {
		return
	}
	fmt.Println("────────────────────────────")
	fmt.Println("🎉 Pedido confirmado!")
	fmt.Println("   Pagamento:", order.PaymentMethod, "(", order.PaymentStatus, ")")
	if order.Address != "" {
		fmt.Println("   Entrega em:", order.Address)
	} else {
		fmt.Println("   Retirada no local")
	}
	fmt.Printf("   Total: R$ %.2f\n", order.Summary.Total)
}

func printHelp() {
	fmt.Println(`Comandos:
  produtos            lista o catálogo
  add <id>            adiciona um produto ao carrinho
  menos <id>          diminui a quantidade em 1
  tirar <id>          remove o produto do carrinho
  guardar <id>        guarda o item para depois
  devolver <id>       devolve o item guardado ao carrinho
  descartar <id>      descarta o item guardado
  carrinho            mostra o resumo com desconto e os guardados
  pagar               vai para o pagamento
  zap                 gera o link de pedido por WhatsApp
  sair                encerra

Na tela de pagamento:
  metodo pix|cartao|dinheiro
  email <email>       entrega retirada|entrega   endereco <endereço>
  numero/nome/validade/cvc/parcelas <valor>      (cartão)
  confirmar           voltar`)
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
	cmd := strings.ToLower(parts[0])
	if len(parts) == 2 {
		return cmd, strings.TrimSpace(parts[1])
	}
	return cmd, ""
}

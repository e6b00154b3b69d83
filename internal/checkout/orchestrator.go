package checkout

import (
	"context"
	"log"
	"strings"

	"atelie_back_end/internal/card"
	"atelie_back_end/internal/cart"
	"atelie_back_end/internal/mercadopago"
	"atelie_back_end/internal/models"
	"atelie_back_end/internal/payment"
	"atelie_back_end/internal/pricing"
	"atelie_back_end/internal/utils"
)

// View é o passo do fluxo de checkout.
type View string

const (
	ViewCart      View = "carrinho"
	ViewPayment   View = "pagamento"
	ViewCompleted View = "concluido"
)

// Campos de cartão aceitos por SetCardField.
const (
	FieldNumber       = "number"
	FieldName         = "name"
	FieldExpiry       = "expiry"
	FieldCVC          = "cvc"
	FieldInstallments = "installments"
)

// Gateway é a fronteira HTTP com o meio de pagamento.
type Gateway interface {
	CreatePayment(ctx context.Context, req *payment.Request) (*models.PaymentResult, error)
}

// Notifier recebe os avisos destinados à superfície de apresentação.
type Notifier interface {
	Warn(msg string)
	Info(msg string)
}

// Mailer envia o comprovante depois de um pagamento aprovado. Opcional.
type Mailer interface {
	SendOrderConfirmation(to string, details models.OrderDetails) error
}

// LogNotifier é o aviso padrão quando nenhuma superfície está plugada.
type LogNotifier struct{}

func (LogNotifier) Warn(msg string) { log.Println("⚠️", msg) }
func (LogNotifier) Info(msg string) { log.Println("ℹ️", msg) }

// Orchestrator dirige o fluxo carrinho → pagamento → concluído.
// Execução cooperativa: toda mutação acontece em reação a um evento de
// entrada ou à conclusão de uma chamada de rede, uma por vez.
type Orchestrator struct {
	cartStore *cart.Store
	gateway   Gateway
	tokenizer mercadopago.Tokenizer
	builder   *payment.Builder
	notifier  Notifier
	mailer    Mailer

	whatsAppNumber string

	view           View
	paymentMethod  payment.Method
	deliveryMethod payment.DeliveryMethod
	email          string
	address        string

	processing bool
	closed     bool

	qrCode     string
	ticketURL  string
	cardInput  models.CardInput
	cardErrors card.FieldErrors

	lastOrder *models.OrderDetails
}

// Option configura dependências opcionais do orquestrador.
type Option func(*Orchestrator)

func WithNotifier(n Notifier) Option        { return func(o *Orchestrator) { o.notifier = n } }
func WithMailer(m Mailer) Option            { return func(o *Orchestrator) { o.mailer = m } }
func WithWhatsAppNumber(num string) Option  { return func(o *Orchestrator) { o.whatsAppNumber = num } }
func WithBuilder(b *payment.Builder) Option { return func(o *Orchestrator) { o.builder = b } }

func New(cartStore *cart.Store, gateway Gateway, tokenizer mercadopago.Tokenizer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cartStore:      cartStore,
		gateway:        gateway,
		tokenizer:      tokenizer,
		builder:        payment.NewBuilder(),
		notifier:       LogNotifier{},
		view:           ViewCart,
		paymentMethod:  payment.MethodPix,
		deliveryMethod: payment.DeliveryPickup,
		cardInput:      models.CardInput{Installments: 1},
		cardErrors:     card.FieldErrors{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) View() View                      { return o.view }
func (o *Orchestrator) Processing() bool                { return o.processing }
func (o *Orchestrator) Closed() bool                    { return o.closed }
func (o *Orchestrator) QRCode() string                  { return o.qrCode }
func (o *Orchestrator) TicketURL() string               { return o.ticketURL }
func (o *Orchestrator) CardErrors() card.FieldErrors    { return o.cardErrors }
func (o *Orchestrator) CardInput() models.CardInput     { return o.cardInput }
func (o *Orchestrator) LastOrder() *models.OrderDetails { return o.lastOrder }

// Summary recalcula os totais sob demanda; nunca é guardado.
func (o *Orchestrator) Summary() models.CartSummary {
	return pricing.Summarize(o.cartStore.Items())
}

// GoToPayment avança para a tela de pagamento. Carrinho vazio barra a
// transição com um aviso, sem mudança de estado.
func (o *Orchestrator) GoToPayment() bool {
	if o.cartStore.Len() == 0 {
		o.notifier.Warn("Seu carrinho está vazio!")
		return false
	}
	o.view = ViewPayment
	return true
}

// BackToCart volta para o carrinho e descarta artefatos em trânsito
// (QR PIX, erros de cartão). Contato e entrega ficam.
func (o *Orchestrator) BackToCart() {
	o.view = ViewCart
	o.qrCode = ""
	o.ticketURL = ""
	o.cardErrors = card.FieldErrors{}
}

// SetPaymentMethod troca o método e zera o estado transitório do método
// anterior; e-mail, entrega e endereço são preservados.
func (o *Orchestrator) SetPaymentMethod(m payment.Method) {
	o.paymentMethod = m
	o.qrCode = ""
	o.ticketURL = ""
	o.cardErrors = card.FieldErrors{}
}

func (o *Orchestrator) PaymentMethod() payment.Method { return o.paymentMethod }

func (o *Orchestrator) SetDeliveryMethod(d payment.DeliveryMethod) { o.deliveryMethod = d }
func (o *Orchestrator) DeliveryMethod() payment.DeliveryMethod     { return o.deliveryMethod }

func (o *Orchestrator) SetEmail(email string)     { o.email = email }
func (o *Orchestrator) SetAddress(address string) { o.address = address }

// SetCardField formata a entrada e limpa o erro do campo assim que o
// usuário volta a digitar.
func (o *Orchestrator) SetCardField(field, raw string) {
	switch field {
	case FieldNumber:
		o.cardInput.Number = card.FormatNumber(raw)
	case FieldName:
		o.cardInput.Name = raw
	case FieldExpiry:
		o.cardInput.Expiry = card.FormatExpiry(raw)
	case FieldCVC:
		o.cardInput.CVC = card.FormatCVC(raw)
	case FieldInstallments:
		o.cardInput.Installments = card.ClampInstallments(raw)
	default:
		return
	}
	delete(o.cardErrors, field)
}

// CanConfirm é a guarda do botão de confirmação.
func (o *Orchestrator) CanConfirm() bool {
	if o.processing {
		return false
	}
	if strings.TrimSpace(o.email) == "" {
		return false
	}
	if o.deliveryMethod == payment.DeliveryCourier &&
		strings.TrimSpace(o.address) == "" &&
		o.paymentMethod != payment.MethodCash {
		return false
	}
	if o.paymentMethod == payment.MethodPix && o.qrCode != "" {
		return false
	}
	if o.paymentMethod == payment.MethodCard && len(o.cardErrors) > 0 {
		return false
	}
	return true
}

// Confirm é a ação principal do pagamento. Dinheiro finaliza localmente;
// PIX e cartão passam pelo gateway. O carrinho só é limpo em sucesso.
func (o *Orchestrator) Confirm(ctx context.Context) error {
	if o.processing {
		return nil
	}

	if o.paymentMethod == payment.MethodCash {
		o.confirmCash()
		return nil
	}

	if strings.TrimSpace(o.email) == "" {
		o.notifier.Warn("Por favor, informe seu email.")
		return nil
	}
	if o.deliveryMethod == payment.DeliveryCourier && strings.TrimSpace(o.address) == "" {
		o.notifier.Warn("Por favor, informe o endereço de entrega.")
		return nil
	}

	if o.paymentMethod == payment.MethodCard {
		return o.confirmCard(ctx)
	}
	return o.confirmPix(ctx)
}

// confirmCash: dinheiro não passa pelo gateway. Entrega em domicílio é
// proibida: o método coage de volta para retirada, avisa e NÃO finaliza
// nessa chamada; o usuário confirma de novo.
func (o *Orchestrator) confirmCash() {
	if strings.TrimSpace(o.email) == "" {
		o.notifier.Warn("Por favor, informe seu email.")
		return
	}

	if o.deliveryMethod == payment.DeliveryCourier {
		o.notifier.Warn("Para pagamento em dinheiro, apenas retirada no local está disponível.")
		o.deliveryMethod = payment.DeliveryPickup
		return
	}

	details := o.orderDetails("", models.StatusPending)
	details.DeliveryMethod = string(payment.DeliveryPickup)

	o.finalize(details)
	o.notifier.Info("🎉 Pedido confirmado! Pagamento será realizado na retirada.")
}

func (o *Orchestrator) confirmPix(ctx context.Context) error {
	o.processing = true
	defer func() { o.processing = false }()

	req, err := o.builder.Build(o.buildInput("", "", 0))
	if err != nil {
		o.notifier.Warn("Erro: " + err.Error())
		return err
	}

	result, err := o.gateway.CreatePayment(ctx, req)
	if err != nil {
		o.notifier.Warn("Erro: " + err.Error())
		return err
	}

	return o.applyResult(result)
}

func (o *Orchestrator) confirmCard(ctx context.Context) error {
	if errs := card.Validate(o.cardInput); len(errs) > 0 {
		o.cardErrors = errs
		o.notifier.Warn("Por favor, corrija os erros no formulário do cartão.")
		return nil
	}

	o.processing = true
	defer func() { o.processing = false }()

	// 1. Tokeniza o cartão; sem token não há requisição.
	token, err := o.tokenizer.Tokenize(ctx, o.cardInput)
	if err != nil {
		o.notifier.Warn("Erro no pagamento: " + err.Error())
		return err
	}

	// 2. Monta e envia o pagamento.
	req, err := o.builder.Build(o.buildInput(token.Value, token.MethodID, o.cardInput.Installments))
	if err != nil {
		o.notifier.Warn("Erro: " + err.Error())
		return err
	}

	result, err := o.gateway.CreatePayment(ctx, req)
	if err != nil {
		o.notifier.Warn("Erro no pagamento: " + err.Error())
		return err
	}

	return o.applyResult(result)
}

// applyResult age sobre a resposta do gateway: aprovado limpa o carrinho
// e fecha; pendente mantém tudo e, no PIX, exibe o QR.
func (o *Orchestrator) applyResult(result *models.PaymentResult) error {
	switch result.Status {
	case models.StatusApproved:
		details := o.orderDetails(result.ID, models.StatusApproved)
		o.finalize(details)
		o.notifier.Info("🎉 Pagamento aprovado! Pedido confirmado com sucesso.")

		if o.mailer != nil {
			email := o.email
			go func() {
				if err := o.mailer.SendOrderConfirmation(email, details); err != nil {
					log.Println("❌ Erro ao enviar comprovante:", err)
				}
			}()
		}

	case models.StatusPending, models.StatusInProcess:
		o.lastOrder = ptr(o.orderDetails(result.ID, result.Status))

		if o.paymentMethod == payment.MethodPix && result.QRCodeBase64 != "" {
			o.qrCode = result.QRCodeBase64
			o.ticketURL = result.TicketURL
			o.notifier.Info("💰 QR Code PIX gerado! Escaneie para pagar.")
		} else {
			o.notifier.Info("⏳ Pagamento em processamento. Você receberá uma confirmação por email.")
		}
	}
	return nil
}

// finalize: único caminho até ViewCompleted. Limpa o carrinho e fecha a
// superfície de checkout.
func (o *Orchestrator) finalize(details models.OrderDetails) {
	o.lastOrder = &details
	o.cartStore.Clear()
	o.view = ViewCompleted
	o.closed = true
}

// WhatsAppOrderLink compõe o deep link de pedido por WhatsApp.
func (o *Orchestrator) WhatsAppOrderLink() (string, bool) {
	if o.cartStore.Len() == 0 {
		return "", false
	}
	msg := utils.BuildWhatsAppMessage(o.Summary())
	return utils.WhatsAppLink(o.whatsAppNumber, msg), true
}

func (o *Orchestrator) buildInput(token, methodID string, installments int) payment.BuildInput {
	summary := o.Summary()
	return payment.BuildInput{
		Items:          summary.Items,
		Summary:        summary,
		Email:          strings.TrimSpace(o.email),
		DeliveryMethod: o.deliveryMethod,
		Address:        strings.TrimSpace(o.address),
		Method:         o.paymentMethod,
		CardToken:      token,
		CardMethodID:   methodID,
		Installments:   installments,
	}
}

func (o *Orchestrator) orderDetails(paymentID, status string) models.OrderDetails {
	address := ""
	if o.deliveryMethod == payment.DeliveryCourier {
		address = o.address
	}
	return models.OrderDetails{
		PaymentMethod:  string(o.paymentMethod),
		DeliveryMethod: string(o.deliveryMethod),
		Address:        address,
		PaymentStatus:  status,
		PaymentID:      paymentID,
		Summary:        o.Summary(),
	}
}

func ptr(d models.OrderDetails) *models.OrderDetails { return &d }

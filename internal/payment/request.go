package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"atelie_back_end/internal/models"
	"atelie_back_end/internal/pricing"
)

// PixExpiration é o prazo de validade do QR Code PIX.
const PixExpiration = 10 * time.Minute

var (
	// ErrCashIsLocal: dinheiro nunca passa pelo gateway; o pedido é
	// finalizado localmente pelo orquestrador.
	ErrCashIsLocal = errors.New("pagamento em dinheiro não gera requisição ao gateway")

	ErrMissingToken = errors.New("pagamento com cartão exige token")
	ErrEmptyCart    = errors.New("carrinho vazio")
)

// PixDetails e CardDetails são os ramos da união: cada requisição carrega
// exatamente os campos válidos para o método dela; impossível mandar
// campos de cartão num PIX ou vice-versa.
type PixDetails struct {
	ExpiresAt time.Time
}

type CardDetails struct {
	Token        string
	MethodID     string
	Installments int
	Capture      bool
}

// Request é o payload destinado ao gateway, montado fresco a cada
// submissão, já com a chave de idempotência.
type Request struct {
	Amount         float64
	Description    string
	PayerEmail     string
	IdempotencyKey string
	Metadata       Metadata

	Pix  *PixDetails
	Card *CardDetails
}

// Metadata é o bloco legível do pedido anexado para conferência.
type Metadata struct {
	TotalItems     int            `json:"total_items"`
	Subtotal       float64        `json:"subtotal"`
	Discount       float64        `json:"discount"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	Address        string         `json:"address"`
	Items          []MetadataItem `json:"items"`
}

type MetadataItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// BuildInput reúne tudo que o builder precisa para montar a requisição.
type BuildInput struct {
	Items          []models.CartItem
	Summary        models.CartSummary
	Email          string
	DeliveryMethod DeliveryMethod
	Address        string
	Method         Method
	CardToken      string
	CardMethodID   string
	Installments   int
}

// Builder monta requisições por método. Now é injetável nos testes.
type Builder struct {
	Now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{Now: time.Now}
}

// Build produz a Request do gateway conforme o método:
// PIX ganha expiração de 10 minutos; cartão exige token prévio e captura
// imediata; dinheiro não gera requisição nenhuma (ErrCashIsLocal).
func (b *Builder) Build(in BuildInput) (*Request, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	req := &Request{
		Amount:         pricing.Round2(in.Summary.Total),
		Description:    fmt.Sprintf("Pedido com %d itens - Ateliê do Chico", in.Summary.TotalItems),
		PayerEmail:     in.Email,
		IdempotencyKey: NewIdempotencyKey(),
		Metadata:       buildMetadata(in),
	}

	switch in.Method {
	case MethodPix:
		req.Pix = &PixDetails{ExpiresAt: b.Now().Add(PixExpiration)}

	case MethodCard:
		if in.CardToken == "" {
			return nil, ErrMissingToken
		}
		installments := in.Installments
		if installments < 1 {
			installments = 1
		}
		req.Card = &CardDetails{
			Token:        in.CardToken,
			MethodID:     in.CardMethodID,
			Installments: installments,
			Capture:      true,
		}

	case MethodCash:
		return nil, ErrCashIsLocal

	default:
		return nil, fmt.Errorf("método de pagamento desconhecido: %q", in.Method)
	}

	return req, nil
}

func buildMetadata(in BuildInput) Metadata {
	address := "Retirada"
	if in.DeliveryMethod == DeliveryCourier {
		address = in.Address
	}

	meta := Metadata{
		TotalItems:     in.Summary.TotalItems,
		Subtotal:       pricing.Round2(in.Summary.Subtotal),
		Discount:       pricing.Round2(in.Summary.Discount),
		DeliveryMethod: in.DeliveryMethod,
		Address:        address,
	}

	for _, item := range in.Items {
		meta.Items = append(meta.Items, MetadataItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       pricing.Round2(item.Product.Price),
		})
	}
	return meta
}

// wirePayload é o formato de fio aceito pela rota de pagamento.
type wirePayload struct {
	TransactionAmount float64   `json:"transaction_amount"`
	Description       string    `json:"description"`
	Payer             wirePayer `json:"payer"`
	Metadata          Metadata  `json:"metadata"`

	PaymentMethodID  string `json:"payment_method_id,omitempty"`
	DateOfExpiration string `json:"date_of_expiration,omitempty"`
	Token            string `json:"token,omitempty"`
	Installments     int    `json:"installments,omitempty"`
	Capture          bool   `json:"capture,omitempty"`
}

type wirePayer struct {
	Email string `json:"email"`
}

// MarshalJSON projeta a união no formato de fio; só o ramo ativo aparece.
func (r *Request) MarshalJSON() ([]byte, error) {
	p := wirePayload{
		TransactionAmount: r.Amount,
		Description:       r.Description,
		Payer:             wirePayer{Email: r.PayerEmail},
		Metadata:          r.Metadata,
	}

	switch {
	case r.Pix != nil:
		p.PaymentMethodID = "pix"
		p.DateOfExpiration = r.Pix.ExpiresAt.UTC().Format(time.RFC3339)
	case r.Card != nil:
		p.PaymentMethodID = r.Card.MethodID
		p.Token = r.Card.Token
		p.Installments = r.Card.Installments
		p.Capture = r.Card.Capture
	}

	return json.Marshal(p)
}

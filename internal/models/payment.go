package models

// CardInput vive apenas em memória durante o checkout, nunca é persistido.
type CardInput struct {
	Number       string `json:"number"`
	Name         string `json:"name"`
	Expiry       string `json:"expiry"`
	CVC          string `json:"cvc"`
	Installments int    `json:"installments"`
}

// Status de pagamento retornados pelo Mercado Pago.
const (
	StatusApproved  = "approved"
	StatusPending   = "pending"
	StatusInProcess = "in_process"
	StatusRejected  = "rejected"
)

// PaymentResult é efêmero: vale apenas enquanto a tela de checkout está aberta.
type PaymentResult struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	PaymentMethodID string `json:"payment_method_id"`
	QRCode          string `json:"qr_code,omitempty"`
	QRCodeBase64    string `json:"qr_code_base64,omitempty"`
	TicketURL       string `json:"ticket_url,omitempty"`
}

type OrderDetails struct {
	PaymentMethod  string      `json:"payment_method"`
	DeliveryMethod string      `json:"delivery_method"`
	Address        string      `json:"address,omitempty"`
	PaymentStatus  string      `json:"payment_status"`
	PaymentID      string      `json:"payment_id,omitempty"`
	Summary        CartSummary `json:"summary"`
}

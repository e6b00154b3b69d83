package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"atelie_back_end/internal/models"
	"atelie_back_end/internal/payment"
)

// DefaultTimeout limita a espera pelo gateway; uma chamada pendurada vira
// falha visível em vez de travar o checkout para sempre.
const DefaultTimeout = 30 * time.Second

// GatewayError é a falha de domínio devolvida quando o gateway recusa a
// requisição: resultado explícito, não exceção.
type GatewayError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Details != "" {
		return e.Details
	}
	return fmt.Sprintf("falha no pagamento (HTTP %d)", e.StatusCode)
}

// UnexpectedStatusError: o gateway respondeu OK mas com um status fora do
// conjunto conhecido.
type UnexpectedStatusError struct {
	Status string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("status de pagamento inesperado: %s", e.Status)
}

// Client fala com a rota de criação de pagamento. Uma submissão = uma
// chamada HTTP; nada é retentado automaticamente.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type gatewayResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	StatusDetail       string      `json:"status_detail"`
	PaymentMethodID    string      `json:"payment_method_id"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
			TicketURL    string `json:"ticket_url"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

type gatewayFailure struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// CreatePayment envia a requisição montada e interpreta a resposta.
// HTTP não-2xx vira GatewayError; status desconhecido vira
// UnexpectedStatusError; para PIX o QR escaneável volta preenchido.
func (c *Client) CreatePayment(ctx context.Context, req *payment.Request) (*models.PaymentResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Idempotency-Key", req.IdempotencyKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &GatewayError{Message: "Não foi possível contactar o gateway de pagamento", Details: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure gatewayFailure
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		log.Printf("❌ Gateway recusou pagamento (HTTP %d): %s", resp.StatusCode, failure.Message)

		msg := failure.Message
		if msg == "" {
			msg = failure.Error
		}
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: msg, Details: failure.Details}
	}

	var data gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "Resposta inválida do gateway", Details: err.Error()}
	}

	switch data.Status {
	case models.StatusApproved, models.StatusPending, models.StatusInProcess:
	case models.StatusRejected:
		// Recusa pode vir com HTTP 2xx; vira a mesma falha de domínio.
		log.Printf("❌ Pagamento recusado: %s", data.StatusDetail)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "Pagamento não aprovado", Details: data.StatusDetail}
	default:
		return nil, &UnexpectedStatusError{Status: data.Status}
	}

	result := &models.PaymentResult{
		ID:              data.ID.String(),
		Status:          data.Status,
		PaymentMethodID: data.PaymentMethodID,
		QRCode:          data.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64:    data.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:       data.PointOfInteraction.TransactionData.TicketURL,
	}

	// Gateway pode mandar só o código copia-e-cola; renderiza o PNG local.
	if req.Pix != nil && result.QRCodeBase64 == "" && result.QRCode != "" {
		if png, err := PixPNGBase64(result.QRCode); err == nil {
			result.QRCodeBase64 = png
		}
	}

	log.Printf("✅ Pagamento criado: id=%s status=%s método=%s", result.ID, result.Status, result.PaymentMethodID)
	return result, nil
}

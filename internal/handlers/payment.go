package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelie_back_end/internal/config"
	"atelie_back_end/internal/payment"
	"atelie_back_end/internal/pricing"
)

// PaymentHandler encaminha a criação de pagamento para o Mercado Pago.
type PaymentHandler struct {
	AccessToken func() string
	GatewayURL  string
	Client      *http.Client
	Now         func() time.Time
}

func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{
		AccessToken: config.AccessToken,
		GatewayURL:  config.GatewayURL(),
		Client:      &http.Client{Timeout: config.GatewayTimeout()},
		Now:         time.Now,
	}
}

// createPaymentRequest é o corpo aceito pela rota.
type createPaymentRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
	PaymentMethodID string          `json:"payment_method_id"`
	Token           string          `json:"token"`
	Installments    int             `json:"installments"`
	Metadata        json.RawMessage `json:"metadata"`
}

// gatewayPayload é o que sai para o Mercado Pago; só os campos do método
// escolhido são preenchidos.
type gatewayPayload struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
	Metadata json.RawMessage `json:"metadata,omitempty"`

	PaymentMethodID    string              `json:"payment_method_id,omitempty"`
	DateOfExpiration   string              `json:"date_of_expiration,omitempty"`
	Token              string              `json:"token,omitempty"`
	Installments       int                 `json:"installments,omitempty"`
	TransactionDetails *transactionDetails `json:"transaction_details,omitempty"`
	Capture            bool                `json:"capture,omitempty"`
}

type transactionDetails struct {
	FinancialInstitution *string `json:"financial_institution"`
}

type gatewayErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Cause   []struct {
		Description string `json:"description"`
	} `json:"cause"`
}

// CriarPagamento - POST /api/mercadopago/criarPagamento
func (h *PaymentHandler) CriarPagamento(c *gin.Context) {
	log.Println("🚀 Criando pagamento...")

	// Falha fechada: sem credencial, nada de chamar o gateway.
	accessToken := h.AccessToken()
	if accessToken == "" {
		log.Println("❌ MP_ACCESS_TOKEN não configurado no .env")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Configuração do servidor incompleta",
			"message": "Token de acesso não configurado",
		})
		return
	}

	var body createPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	if body.TransactionAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valor da transação inválido"})
		return
	}
	if body.Payer.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email do pagador é obrigatório"})
		return
	}

	description := body.Description
	if description == "" {
		description = "Pagamento"
	}
	// Corte por runas: descrição em português pode ter acentos.
	if runes := []rune(description); len(runes) > 200 {
		description = string(runes[:200])
	}

	var out gatewayPayload
	out.TransactionAmount = pricing.Round2(body.TransactionAmount)
	out.Description = description
	out.Payer.Email = body.Payer.Email
	out.Metadata = body.Metadata

	// Configuração específica para PIX.
	if body.PaymentMethodID == "pix" {
		out.PaymentMethodID = "pix"
		out.DateOfExpiration = h.Now().Add(payment.PixExpiration).UTC().Format(time.RFC3339)
	}

	// Configuração específica para cartão (token já obtido no cliente).
	if body.Token != "" {
		out.Token = body.Token
		out.Installments = body.Installments
		if out.Installments == 0 {
			out.Installments = 1
		}
		out.PaymentMethodID = body.PaymentMethodID // opcional, detectado pelo token
		out.TransactionDetails = &transactionDetails{}
		out.Capture = true // captura imediata
	}

	idempotencyKey := c.GetHeader("X-Idempotency-Key")
	if idempotencyKey == "" {
		idempotencyKey = payment.NewIdempotencyKey()
	}

	payload, err := json.Marshal(out)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", idempotencyKey)

	resp, err := h.Client.Do(req)
	if err != nil {
		log.Println("💥 Erro ao contactar o Mercado Pago:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro interno do servidor",
			"message": "Não foi possível processar o pagamento",
		})
		return
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro interno do servidor",
			"message": "Não foi possível processar o pagamento",
		})
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var mpErr gatewayErrorBody
		_ = json.Unmarshal(raw, &mpErr)
		log.Printf("❌ Erro do Mercado Pago (HTTP %d): %s", resp.StatusCode, mpErr.Message)

		details := mpErr.Error
		if len(mpErr.Cause) > 0 && mpErr.Cause[0].Description != "" {
			details = mpErr.Cause[0].Description
		}
		c.JSON(resp.StatusCode, gin.H{
			"error":   "Falha no pagamento",
			"message": mpErr.Message,
			"details": details,
		})
		return
	}

	log.Println("✅ Pagamento criado!")
	c.Data(http.StatusOK, "application/json", raw)
}

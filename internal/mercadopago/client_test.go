package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelie_back_end/internal/models"
	"atelie_back_end/internal/payment"
)

func pixRequest(t *testing.T) *payment.Request {
	t.Helper()
	items := []models.CartItem{{
		Product:  models.Product{ID: 1, Name: "Bandeja", Price: 89.90},
		Quantity: 1,
	}}
	b := payment.NewBuilder()
	req, err := b.Build(payment.BuildInput{
		Items:          items,
		Summary:        models.CartSummary{Items: items, Subtotal: 89.90, Total: 89.90, TotalItems: 1},
		Email:          "cliente@example.com",
		DeliveryMethod: payment.DeliveryPickup,
		Method:         payment.MethodPix,
	})
	require.NoError(t, err)
	return req
}

func TestCreatePayment_Approved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))

		json.NewEncoder(w).Encode(map[string]any{
			"id":                12345678,
			"status":            "approved",
			"payment_method_id": "visa",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	result, err := client.CreatePayment(context.Background(), pixRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "12345678", result.ID)
	assert.Equal(t, models.StatusApproved, result.Status)
}

func TestCreatePayment_PendingPixCarriesQRCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":     987,
			"status": "pending",
			"point_of_interaction": map[string]any{
				"transaction_data": map[string]any{
					"qr_code":        "00020126580014br.gov.bcb.pix",
					"qr_code_base64": "aW1hZ2VtLWZha2U=",
					"ticket_url":     "https://mercadopago.com/ticket/987",
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	result, err := client.CreatePayment(context.Background(), pixRequest(t))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, result.Status)
	assert.Equal(t, "aW1hZ2VtLWZha2U=", result.QRCodeBase64)
	assert.Equal(t, "https://mercadopago.com/ticket/987", result.TicketURL)
}

func TestCreatePayment_PendingPixRendersQRFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":     988,
			"status": "pending",
			"point_of_interaction": map[string]any{
				"transaction_data": map[string]any{
					"qr_code": "00020126580014br.gov.bcb.pix",
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	result, err := client.CreatePayment(context.Background(), pixRequest(t))
	require.NoError(t, err)

	// Sem base64 do gateway, o PNG é renderizado localmente.
	assert.NotEmpty(t, result.QRCodeBase64)
}

func TestCreatePayment_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   "Falha no pagamento",
			"message": "cc_rejected_insufficient_amount",
			"details": "Saldo insuficiente",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.CreatePayment(context.Background(), pixRequest(t))

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.Equal(t, "cc_rejected_insufficient_amount", gwErr.Message)
	assert.Equal(t, "Saldo insuficiente", gwErr.Details)
}

func TestCreatePayment_RejectedStatusWithOKResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":            99,
			"status":        "rejected",
			"status_detail": "cc_rejected_insufficient_amount",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.CreatePayment(context.Background(), pixRequest(t))

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Pagamento não aprovado", gwErr.Message)
	assert.Equal(t, "cc_rejected_insufficient_amount", gwErr.Details)
}

func TestCreatePayment_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "status": "cancelled"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.CreatePayment(context.Background(), pixRequest(t))

	var statusErr *UnexpectedStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "cancelled", statusErr.Status)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestCreatePayment_TimeoutSurfacesAsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 20*time.Millisecond)
	_, err := client.CreatePayment(context.Background(), pixRequest(t))

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
}

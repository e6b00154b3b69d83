package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load carrega o .env; sem arquivo, seguimos com as variáveis do sistema.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Nenhum arquivo .env encontrado — usando variáveis de ambiente do sistema")
	} else {
		log.Println("✅ Arquivo .env carregado")
	}
}

// AccessToken é a credencial do Mercado Pago. Vazia → a rota de pagamento
// falha fechada com 500 antes de qualquer chamada ao gateway.
func AccessToken() string {
	return os.Getenv("MP_ACCESS_TOKEN")
}

// GatewayURL é o endpoint de criação de pagamento do Mercado Pago.
func GatewayURL() string {
	if u := os.Getenv("MP_API_URL"); u != "" {
		return u
	}
	return "https://api.mercadopago.com/v1/payments"
}

// GatewayTimeout limita a espera pela resposta do gateway.
func GatewayTimeout() time.Duration {
	if raw := os.Getenv("GATEWAY_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 30 * time.Second
}

func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

// CheckoutURL é a rota de criação de pagamento do servidor da loja,
// usada pelo cliente de terminal.
func CheckoutURL() string {
	base := os.Getenv("ATELIE_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/api/mercadopago/criarPagamento"
}

// WhatsAppNumber é o destino fixo do pedido alternativo por WhatsApp.
func WhatsAppNumber() string {
	if n := os.Getenv("WHATSAPP_NUMBER"); n != "" {
		return n
	}
	return "14991114764"
}

// CartStorageDir é onde o carrinho fica persistido no dispositivo.
func CartStorageDir() string {
	if dir := os.Getenv("CART_STORAGE_PATH"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".atelie"
	}
	return filepath.Join(home, ".atelie")
}

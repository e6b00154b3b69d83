package mercadopago

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"atelie_back_end/internal/models"
	"atelie_back_end/internal/payment"
)

// Token é o cartão já tokenizado: valor opaco + bandeira detectada.
type Token struct {
	Value    string
	MethodID string
}

// Tokenizer troca o número do cartão por um token opaco. A tokenização é
// assíncrona e pode falhar (bandeira não suportada); nesse caso nenhuma
// requisição de pagamento deve ser montada.
type Tokenizer interface {
	Tokenize(ctx context.Context, input models.CardInput) (Token, error)
}

// SimulatedTokenizer aproxima a SDK do Mercado Pago: latência de rede
// simulada e detecção de bandeira pelo primeiro dígito.
type SimulatedTokenizer struct {
	Delay time.Duration
}

func NewSimulatedTokenizer() *SimulatedTokenizer {
	return &SimulatedTokenizer{Delay: time.Second}
}

func (t *SimulatedTokenizer) Tokenize(ctx context.Context, input models.CardInput) (Token, error) {
	clean := strings.ReplaceAll(input.Number, " ", "")

	methodID, err := payment.IssuerMethodID(clean)
	if err != nil {
		return Token{}, err
	}

	if t.Delay > 0 {
		select {
		case <-time.After(t.Delay):
		case <-ctx.Done():
			return Token{}, ctx.Err()
		}
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return Token{
		Value:    methodID + "_token_" + suffix,
		MethodID: methodID,
	}, nil
}

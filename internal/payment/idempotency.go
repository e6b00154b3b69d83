package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewIdempotencyKey gera a chave que o gateway usa para dedupe de
// reenvios: componente de tempo + sufixo aleatório. Duas submissões
// nunca colidem.
func NewIdempotencyKey() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("mp_%d_%s", time.Now().UnixMilli(), suffix)
}

package card

import (
	"regexp"
	"strconv"
	"strings"

	"atelie_back_end/internal/models"
)

const (
	MinInstallments = 1
	MaxInstallments = 12
)

var (
	numberPattern = regexp.MustCompile(`^\d{13,19}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvcPattern    = regexp.MustCompile(`^\d{3,4}$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

// FieldErrors mapeia campo → mensagem. Mapa vazio significa cartão válido;
// quem chama decide por tamanho, nunca por exceção.
type FieldErrors map[string]string

// FormatNumber agrupa os dígitos de 4 em 4 e corta em 19 caracteres
// (16 dígitos + 3 espaços).
func FormatNumber(raw string) string {
	clean := nonDigits.ReplaceAllString(raw, "")

	var b strings.Builder
	for i, r := range clean {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	formatted := b.String()
	if len(formatted) > 19 {
		formatted = formatted[:19]
	}
	return formatted
}

// FormatExpiry insere a barra depois do segundo dígito (MM/AA).
func FormatExpiry(raw string) string {
	clean := nonDigits.ReplaceAllString(raw, "")
	if len(clean) >= 2 {
		end := len(clean)
		if end > 4 {
			end = 4
		}
		return clean[:2] + "/" + clean[2:end]
	}
	return clean
}

// FormatCVC mantém só dígitos, no máximo 4.
func FormatCVC(raw string) string {
	clean := nonDigits.ReplaceAllString(raw, "")
	if len(clean) > 4 {
		clean = clean[:4]
	}
	return clean
}

// ClampInstallments converte a entrada em inteiro no intervalo [1, 12].
// Entrada que não parseia vira 1.
func ClampInstallments(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return MinInstallments
	}
	if n < MinInstallments {
		return MinInstallments
	}
	if n > MaxInstallments {
		return MaxInstallments
	}
	return n
}

// Validate aplica as regras do cartão e devolve os erros por campo.
func Validate(input models.CardInput) FieldErrors {
	errors := FieldErrors{}

	clean := strings.ReplaceAll(input.Number, " ", "")
	if !numberPattern.MatchString(clean) {
		errors["number"] = "Número do cartão inválido"
	}

	if name := strings.TrimSpace(input.Name); name == "" || len(name) < 3 {
		errors["name"] = "Nome no cartão é obrigatório"
	}

	if !expiryPattern.MatchString(input.Expiry) {
		errors["expiry"] = "Data inválida (MM/AA)"
	}

	if !cvcPattern.MatchString(input.CVC) {
		errors["cvc"] = "CVC inválido"
	}

	if input.Installments < MinInstallments || input.Installments > MaxInstallments {
		errors["installments"] = "Número de parcelas inválido"
	}

	return errors
}

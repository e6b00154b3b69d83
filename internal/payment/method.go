package payment

import "errors"

// Method é a forma de pagamento escolhida no checkout.
type Method string

const (
	MethodPix  Method = "pix"
	MethodCard Method = "cartao"
	MethodCash Method = "dinheiro"
)

// DeliveryMethod é a forma de entrega do pedido.
type DeliveryMethod string

const (
	DeliveryPickup  DeliveryMethod = "retirada"
	DeliveryCourier DeliveryMethod = "entrega"
)

// ErrUnsupportedNetwork: bandeira de cartão fora do conjunto aceito.
var ErrUnsupportedNetwork = errors.New("bandeira não suportada")

// IssuerMethodID deduz a bandeira pelo primeiro dígito do cartão:
// 4 → visa, 5 → master. Qualquer outro é rejeitado antes de montar
// qualquer requisição.
func IssuerMethodID(number string) (string, error) {
	if len(number) == 0 {
		return "", ErrUnsupportedNetwork
	}
	switch number[0] {
	case '4':
		return "visa", nil
	case '5':
		return "master", nil
	}
	return "", ErrUnsupportedNetwork
}

package mercadopago

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// PixPNGBase64 renderiza o código copia-e-cola do PIX como PNG em base64,
// pronto para um <img src="data:image/png;base64,...">.
func PixPNGBase64(qrData string) (string, error) {
	png, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

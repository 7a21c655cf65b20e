package utils

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// QRDataURI encodes content as a PNG QR code ready for <img src="...">.
func QRDataURI(content string, size int) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

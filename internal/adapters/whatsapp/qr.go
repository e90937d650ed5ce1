package whatsapp

import (
	"fmt"

	"github.com/bnema/opbots/internal/ports"
	qrcode "github.com/skip2/go-qrcode"
)

const defaultQRSize = 512

// QRRenderer encodes pairing codes as PNG images for the chat transport.
type QRRenderer struct {
	Size int
}

var _ ports.QRRenderer = QRRenderer{}

func (r QRRenderer) PNG(code string) ([]byte, error) {
	size := r.Size
	if size <= 0 {
		size = defaultQRSize
	}

	png, err := qrcode.Encode(code, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode pairing qr: %w", err)
	}
	return png, nil
}

// TerminalQR renders code with half-block characters for a terminal.
func TerminalQR(code string) (string, error) {
	qr, err := qrcode.New(code, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("encode pairing qr: %w", err)
	}
	return qr.ToSmallString(false), nil
}

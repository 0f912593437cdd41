// Package qrimage renders credential tokens as scannable PNG images.
package qrimage

import (
	"fmt"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
)

const Size = 512

// Ticket styling: dark slate modules on a pale mint background.
var (
	foreground = color.RGBA{R: 0x0F, G: 0x17, B: 0x2A, A: 0xFF}
	background = color.RGBA{R: 0xE6, G: 0xFF, B: 0xFA, A: 0xFF}
)

// PNG encodes token into a high-redundancy QR image, tolerant of worn or
// partially covered screens at the door.
func PNG(token string) ([]byte, error) {
	q, err := qrcode.New(token, qrcode.High)
	if err != nil {
		return nil, fmt.Errorf("build qr code: %w", err)
	}
	q.ForegroundColor = foreground
	q.BackgroundColor = background

	png, err := q.PNG(Size)
	if err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return png, nil
}

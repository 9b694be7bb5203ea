package qrcode

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// Creator qr codes.
type Creator struct {
	level qrcode.RecoveryLevel
}

// NewCreator ...
func NewCreator() *Creator {
	return &Creator{
		level: qrcode.Medium,
	}
}

// Image returns qr code image of size x size pixels.
func (c *Creator) Image(payload string, size int) (image.Image, error) {
	q, err := qrcode.New(payload, c.level)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Image(size), nil
}

package raster

import (
	"github.com/geoirb/go-certgen/internal/record"
)

// Layout size in logical units, the image is Scale times larger.
const (
	Width  = 1000
	Height = 707

	defaultScale   = 2
	defaultQRField = "certificate_id"
)

// Options of rasterizer.
type Options struct {
	// Scale is the upscaling factor of the raster image.
	Scale int
	// Defaults for fields missing in the record.
	Defaults record.Defaults

	// QRField names the record field encoded into the verification qr code.
	// The code is drawn only when the field is not blank. Empty disables it.
	QRField string
	// QRBaseURL is prepended to the field value.
	QRBaseURL string

	// TrueType font files, Go fonts are used for empty paths.
	FontRegular string
	FontBold    string
	FontItalic  string
}

// DefaultOptions ...
func DefaultOptions() Options {
	return Options{
		Scale:    defaultScale,
		Defaults: record.LayoutDefaults,
		QRField:  defaultQRField,
	}
}

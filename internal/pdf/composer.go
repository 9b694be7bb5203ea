package pdf

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	orientation = "L"
	unit        = "mm"
	pageSize    = "A4"
	imageName   = "certificate"
	imageType   = "PNG"
)

// Composer puts a certificate image on a single A4 landscape page.
type Composer struct {
	validate bool
}

// NewComposer ...
func NewComposer(validate bool) *Composer {
	return &Composer{
		validate: validate,
	}
}

// Compose returns pdf document with img stretched to the whole page.
func (c *Composer) Compose(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errEmptyImage
	}

	var encoded bytes.Buffer
	if err := imaging.Encode(&encoded, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	doc := gofpdf.New(orientation, unit, pageSize, "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	options := gofpdf.ImageOptions{ImageType: imageType}
	doc.RegisterImageOptionsReader(imageName, options, &encoded)
	width, height := doc.GetPageSize()
	doc.ImageOptions(imageName, 0, 0, width, height, false, options, 0, "")

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", errCompose, err)
	}

	if c.validate {
		if err := Validate(out.Bytes()); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

// Validate checks the structure of a pdf document in relaxed mode.
func Validate(data []byte) error {
	if err := api.Validate(bytes.NewReader(data), configuration()); err != nil {
		return fmt.Errorf("%w: %v", errInvalid, err)
	}
	return nil
}

// PageCount returns the number of pages of a pdf document.
func PageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), configuration())
}

func configuration() *model.Configuration {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

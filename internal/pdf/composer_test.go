package pdf_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoirb/go-certgen/internal/pdf"
)

func TestCompose(t *testing.T) {
	img := imaging.New(200, 141, color.NRGBA{R: 0x2c, G: 0x5a, B: 0xa0, A: 0xff})

	testCases := []struct {
		name     string
		validate bool
	}{
		{name: "without validation"},
		{name: "with validation", validate: true},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			c := pdf.NewComposer(test.validate)

			data, err := c.Compose(img)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

			pages, err := pdf.PageCount(data)
			require.NoError(t, err)
			assert.Equal(t, 1, pages)
			assert.NoError(t, pdf.Validate(data))
		})
	}
}

func TestComposeEmptyImage(t *testing.T) {
	c := pdf.NewComposer(false)

	_, err := c.Compose(nil)
	assert.Error(t, err)

	_, err = c.Compose(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.Error(t, pdf.Validate([]byte("not a pdf")))
}

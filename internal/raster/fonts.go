package raster

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Style of text.
type Style int

// Styles.
const (
	Regular Style = iota
	Bold
	Italic
)

type fonts map[Style]*opentype.Font

func loadFonts(opts Options) (fonts, error) {
	sources := []struct {
		style    Style
		path     string
		fallback []byte
	}{
		{style: Regular, path: opts.FontRegular, fallback: goregular.TTF},
		{style: Bold, path: opts.FontBold, fallback: gobold.TTF},
		{style: Italic, path: opts.FontItalic, fallback: goitalic.TTF},
	}

	f := make(fonts, len(sources))
	for _, source := range sources {
		data := source.fallback
		if source.path != "" {
			var err error
			if data, err = os.ReadFile(source.path); err != nil {
				return nil, fmt.Errorf("read font: %w", err)
			}
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", source.path, err)
		}
		f[source.style] = parsed
	}
	return f, nil
}

type faceKey struct {
	style Style
	size  float64
}

// faceCache holds faces of one rasterization, faces are not safe for concurrent use.
type faceCache struct {
	fonts fonts
	scale float64
	faces map[faceKey]font.Face
}

func newFaceCache(fonts fonts, scale float64) *faceCache {
	return &faceCache{
		fonts: fonts,
		scale: scale,
		faces: make(map[faceKey]font.Face),
	}
}

// face of size in logical units.
func (c *faceCache) face(style Style, size float64) (font.Face, error) {
	key := faceKey{style: style, size: size}
	if face, isExist := c.faces[key]; isExist {
		return face, nil
	}
	face, err := opentype.NewFace(c.fonts[style], &opentype.FaceOptions{
		Size:    size * c.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %v/%v: %w", style, size, err)
	}
	c.faces[key] = face
	return face, nil
}

// measure returns width of text in logical units.
func (c *faceCache) measure(style Style, size float64, text string, spacing float64) (float64, error) {
	face, err := c.face(style, size)
	if err != nil {
		return 0, err
	}
	width := float64(font.MeasureString(face, text)) / 64 / c.scale
	if n := utf8.RuneCountInString(text); n > 1 {
		width += spacing * float64(n-1)
	}
	return width, nil
}

func (c *faceCache) close() {
	for _, face := range c.faces {
		face.Close()
	}
}

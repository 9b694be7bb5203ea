package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/geoirb/go-certgen/internal/record"
)

type qrcode interface {
	Image(payload string, size int) (image.Image, error)
}

// Rasterizer draws certificates of records.
// It keeps no state between calls and is safe for concurrent use.
type Rasterizer struct {
	opts   Options
	fonts  fonts
	qrcode qrcode
}

// NewRasterizer ...
func NewRasterizer(
	opts Options,
	qrcode qrcode,
) (*Rasterizer, error) {
	if opts.Scale <= 0 {
		opts.Scale = defaultScale
	}
	if opts.Defaults == nil {
		opts.Defaults = record.LayoutDefaults
	}
	fonts, err := loadFonts(opts)
	if err != nil {
		return nil, err
	}
	return &Rasterizer{
		opts:   opts,
		fonts:  fonts,
		qrcode: qrcode,
	}, nil
}

// Size returns the raster image size in pixels.
func (r *Rasterizer) Size() (width, height int) {
	return Width * r.opts.Scale, Height * r.opts.Scale
}

// Layout returns the positioned elements of the certificate of rec.
func (r *Rasterizer) Layout(rec *record.Record) ([]Element, error) {
	faces := newFaceCache(r.fonts, float64(r.opts.Scale))
	defer faces.close()
	return r.layout(rec, faces)
}

// Rasterize returns the certificate image of rec.
func (r *Rasterizer) Rasterize(rec *record.Record) (image.Image, error) {
	faces := newFaceCache(r.fonts, float64(r.opts.Scale))
	defer faces.close()

	elements, err := r.layout(rec, faces)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	width, height := r.Size()
	canvas := imaging.New(width, height, color.White)
	d := &drawer{
		canvas: canvas,
		scale:  float64(r.opts.Scale),
		faces:  faces,
		qrcode: r.qrcode,
	}
	for _, e := range elements {
		if err = d.draw(e); err != nil {
			return nil, fmt.Errorf("draw %s: %w", e.Role, err)
		}
	}
	return canvas, nil
}

type drawer struct {
	canvas *image.NRGBA
	scale  float64
	faces  *faceCache
	qrcode qrcode
}

func (d *drawer) px(v float64) int {
	return int(math.Round(v * d.scale))
}

func (d *drawer) rect(e Element) image.Rectangle {
	return image.Rect(d.px(e.X), d.px(e.Y), d.px(e.X+e.W), d.px(e.Y+e.H)).Intersect(d.canvas.Bounds())
}

func (d *drawer) draw(e Element) error {
	switch e.Kind {
	case KindBackground:
		d.background(d.rect(e), e.Color, white)
	case KindRect:
		draw.Draw(d.canvas, d.rect(e), image.NewUniform(e.Color), image.Point{}, draw.Over)
	case KindGradientLine:
		d.gradientLine(d.rect(e), e.Color)
	case KindText:
		return d.text(e)
	case KindQRCode:
		return d.qr(e)
	default:
		return fmt.Errorf("%w: %d", errUnknownKind, e.Kind)
	}
	return nil
}

// background is a diagonal gradient from the top left corner.
func (d *drawer) background(r image.Rectangle, from, to color.NRGBA) {
	span := float64(r.Dx() + r.Dy() - 2)
	if span <= 0 {
		span = 1
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t := float64(x-r.Min.X+y-r.Min.Y) / span
			d.canvas.SetNRGBA(x, y, lerp(from, to, t))
		}
	}
}

// gradientLine fades c in from the left end and out to the right end.
func (d *drawer) gradientLine(r image.Rectangle, c color.NRGBA) {
	width := float64(r.Dx())
	for x := r.Min.X; x < r.Max.X; x++ {
		t := (float64(x-r.Min.X) + 0.5) / width
		alpha := 1 - math.Abs(2*t-1)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			d.canvas.SetNRGBA(x, y, lerp(d.canvas.NRGBAAt(x, y), c, alpha))
		}
	}
}

func (d *drawer) text(e Element) error {
	face, err := d.faces.face(e.Style, e.Size)
	if err != nil {
		return err
	}
	metrics := face.Metrics()
	ascent := float64(metrics.Ascent) / 64
	descent := float64(metrics.Descent) / 64

	x := e.X * d.scale
	if e.Align == AlignCenter {
		x -= e.W * d.scale / 2
	}
	baseline := e.Y*d.scale + (e.H*d.scale-(ascent+descent))/2 + ascent

	fd := &font.Drawer{
		Dst:  d.canvas,
		Src:  image.NewUniform(e.Color),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(baseline)},
	}
	if e.Spacing == 0 {
		fd.DrawString(e.Text)
		return nil
	}
	spacing := toFixed(e.Spacing * d.scale)
	for _, ch := range e.Text {
		fd.DrawString(string(ch))
		fd.Dot.X += spacing
	}
	return nil
}

func (d *drawer) qr(e Element) error {
	r := d.rect(e)
	img, err := d.qrcode.Image(e.Text, r.Dx())
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	if img.Bounds().Dx() != r.Dx() || img.Bounds().Dy() != r.Dy() {
		img = imaging.Resize(img, r.Dx(), r.Dy(), imaging.NearestNeighbor)
	}
	draw.Draw(d.canvas, r, img, img.Bounds().Min, draw.Over)
	return nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func lerp(from, to color.NRGBA, t float64) color.NRGBA {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.NRGBA{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
		A: mix(from.A, to.A),
	}
}

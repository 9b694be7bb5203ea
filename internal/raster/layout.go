package raster

import (
	"image/color"
	"strings"

	"github.com/geoirb/go-certgen/internal/record"
)

// Kind of layout element.
type Kind int

// Kinds.
const (
	KindBackground Kind = iota
	KindRect
	KindGradientLine
	KindText
	KindQRCode
)

// Align of text element.
type Align int

// Aligns.
const (
	AlignCenter Align = iota
	AlignLeft
)

// Element roles.
const (
	RoleBackground       = "background"
	RoleCorner           = "corner"
	RoleBorder           = "border"
	RoleRule             = "rule"
	RoleTitle            = "title"
	RoleSubtitle         = "subtitle"
	RoleIntro            = "intro"
	RoleName             = "name"
	RoleNameUnderline    = "name-underline"
	RoleCompleted        = "completed"
	RoleCourse           = "course"
	RoleGradeLabel       = "grade-label"
	RoleGrade            = "grade"
	RoleSignatureLine    = "signature-line"
	RoleDateCaption      = "date-caption"
	RoleDate             = "date"
	RoleSignatureCaption = "signature-caption"
	RoleQRCode           = "qr-code"
)

// Element of certificate layout. Coordinates are logical units.
// For text X is the anchor by Align, Y is the top of the line box and H is the line height.
type Element struct {
	Role string
	Kind Kind

	X, Y, W, H float64
	Color      color.NRGBA

	Text    string
	Style   Style
	Size    float64
	Spacing float64
	Align   Align
}

var (
	blue       = color.NRGBA{R: 0x2c, G: 0x5a, B: 0xa0, A: 0xff}
	gold       = color.NRGBA{R: 0xc9, G: 0xa9, B: 0x61, A: 0xff}
	grey666    = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	grey444    = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	grey333    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	black1a    = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	white      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	background = color.NRGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
)

const (
	centerX = Width / 2

	borderInset = 50.0
	borderWidth = 3.0
	padding     = 40.0

	contentLeft   = borderInset + borderWidth + padding
	contentRight  = Width - contentLeft
	contentTop    = contentLeft
	contentBottom = Height - contentLeft
	contentWidth  = contentRight - contentLeft

	cornerInset = 30.0
	cornerSize  = 80.0
	cornerWidth = 4.0

	lineHeight  = 1.15
	minTextSize = 10.0

	namePadding   = 40.0
	signatureLine = 200.0
	qrSize        = 90.0
	qrMargin      = 12.0
)

// block is a vertical flex item of the content column.
type block struct {
	height float64
	gap    float64
	emit   func(top float64) []Element
}

type layouter struct {
	faces    *faceCache
	blocks   []block
	defaults record.Defaults
}

func (r *Rasterizer) layout(rec *record.Record, faces *faceCache) ([]Element, error) {
	l := &layouter{
		faces:    faces,
		defaults: r.opts.Defaults,
	}

	elements := decorations()

	l.line(KindGradientLine, 150, 3, 20)
	if err := l.text(RoleTitle, "Certificate", Bold, 52, 4, blue, 10, true); err != nil {
		return nil, err
	}
	if err := l.text(RoleSubtitle, "of Achievement", Regular, 20, 2, grey666, 30, true); err != nil {
		return nil, err
	}
	l.line(KindRect, 100, 2, 30)
	if err := l.text(RoleIntro, "This is to certify that", Italic, 16, 0, grey444, 20, false); err != nil {
		return nil, err
	}
	if err := l.name(l.defaults.Value(rec, record.NameField)); err != nil {
		return nil, err
	}
	if err := l.text(RoleCompleted, "has successfully completed the course", Regular, 16, 0, grey444, 15, false); err != nil {
		return nil, err
	}
	if err := l.text(RoleCourse, l.defaults.Value(rec, record.CourseField), Bold, 28, 0, blue, 25, false); err != nil {
		return nil, err
	}
	if grade, ok := rec.NonEmpty(record.GradeField); ok {
		if err := l.grade(grade); err != nil {
			return nil, err
		}
	}
	l.addGap(25)
	l.line(KindGradientLine, 150, 3, 20+30)
	date, _ := rec.NonEmpty(record.DateField)
	if err := l.signatures(date); err != nil {
		return nil, err
	}

	elements = append(elements, l.place()...)

	if r.opts.QRField != "" {
		if value, ok := rec.NonEmpty(r.opts.QRField); ok {
			elements = append(elements, Element{
				Role:  RoleQRCode,
				Kind:  KindQRCode,
				X:     Width - borderInset - borderWidth - qrMargin - qrSize,
				Y:     Height - borderInset - borderWidth - qrMargin - qrSize,
				W:     qrSize,
				H:     qrSize,
				Color: black1a,
				Text:  r.opts.QRBaseURL + value,
			})
		}
	}
	return elements, nil
}

// place centers blocks vertically in the content box, gaps shrink when the
// blocks do not fit.
func (l *layouter) place() []Element {
	var heights, gaps float64
	for i, b := range l.blocks {
		heights += b.height
		if i != len(l.blocks)-1 {
			gaps += b.gap
		}
	}
	available := contentBottom - contentTop
	gapScale := 1.0
	if heights+gaps > available && gaps > 0 {
		gapScale = (available - heights) / gaps
		if gapScale < 0 {
			gapScale = 0
		}
	}

	top := contentTop + (available-heights-gaps*gapScale)/2
	elements := make([]Element, 0, len(l.blocks)*2)
	for _, b := range l.blocks {
		if b.emit != nil {
			elements = append(elements, b.emit(top)...)
		}
		top += b.height + b.gap*gapScale
	}
	return elements
}

// addGap adds to the bottom margin of the last block.
func (l *layouter) addGap(gap float64) {
	if len(l.blocks) != 0 {
		l.blocks[len(l.blocks)-1].gap += gap
	}
}

// line is a centered gold rule, solid or fading to both ends.
func (l *layouter) line(kind Kind, width, height, gap float64) {
	l.blocks = append(l.blocks, block{
		height: height,
		gap:    gap,
		emit: func(top float64) []Element {
			return []Element{{
				Role:  RoleRule,
				Kind:  kind,
				X:     centerX - width/2,
				Y:     top,
				W:     width,
				H:     height,
				Color: gold,
			}}
		},
	})
}

// fit returns text size reduced so the text fits maxWidth.
func (l *layouter) fit(text string, style Style, size, spacing, maxWidth float64) (float64, float64, error) {
	width, err := l.faces.measure(style, size, text, spacing)
	if err != nil {
		return 0, 0, err
	}
	if width <= maxWidth {
		return size, width, nil
	}
	size = size * maxWidth / width
	if size < minTextSize {
		size = minTextSize
	}
	width, err = l.faces.measure(style, size, text, spacing)
	return size, width, err
}

func (l *layouter) textElement(role, text string, style Style, size, spacing float64, c color.NRGBA, maxWidth float64) (Element, error) {
	size, width, err := l.fit(text, style, size, spacing, maxWidth)
	if err != nil {
		return Element{}, err
	}
	return Element{
		Role:    role,
		Kind:    KindText,
		X:       centerX,
		W:       width,
		H:       size * lineHeight,
		Color:   c,
		Text:    text,
		Style:   style,
		Size:    size,
		Spacing: spacing,
		Align:   AlignCenter,
	}, nil
}

func (l *layouter) text(role, text string, style Style, size, spacing float64, c color.NRGBA, gap float64, upper bool) error {
	if upper {
		text = strings.ToUpper(text)
	}
	e, err := l.textElement(role, text, style, size, spacing, c, contentWidth)
	if err != nil {
		return err
	}
	l.blocks = append(l.blocks, block{
		height: e.H,
		gap:    gap,
		emit: func(top float64) []Element {
			e.Y = top
			return []Element{e}
		},
	})
	return nil
}

func (l *layouter) name(name string) error {
	e, err := l.textElement(RoleName, name, Bold, 42, 0, black1a, contentWidth-2*namePadding)
	if err != nil {
		return err
	}
	const (
		underlineGap   = 10.0
		underlineWidth = 2.0
	)
	l.blocks = append(l.blocks, block{
		height: e.H + underlineGap + underlineWidth,
		gap:    30,
		emit: func(top float64) []Element {
			e.Y = top
			width := e.W + 2*namePadding
			return []Element{e, {
				Role:  RoleNameUnderline,
				Kind:  KindRect,
				X:     centerX - width/2,
				Y:     top + e.H + underlineGap,
				W:     width,
				H:     underlineWidth,
				Color: gold,
			}}
		},
	})
	return nil
}

// grade line: "with a grade of " followed by the grade in accent, centered together.
func (l *layouter) grade(grade string) error {
	const label = "with a grade of "
	labelSize, gradeSize := 18.0, 22.0

	labelWidth, err := l.faces.measure(Regular, labelSize, label, 0)
	if err != nil {
		return err
	}
	gradeSize, gradeWidth, err := l.fit(grade, Bold, gradeSize, 0, contentWidth-labelWidth)
	if err != nil {
		return err
	}
	height := gradeSize * lineHeight
	if h := labelSize * lineHeight; h > height {
		height = h
	}
	left := centerX - (labelWidth+gradeWidth)/2

	l.blocks = append(l.blocks, block{
		height: height,
		gap:    20,
		emit: func(top float64) []Element {
			return []Element{
				{
					Role:  RoleGradeLabel,
					Kind:  KindText,
					X:     left,
					Y:     top,
					W:     labelWidth,
					H:     height,
					Color: grey444,
					Text:  label,
					Style: Regular,
					Size:  labelSize,
					Align: AlignLeft,
				},
				{
					Role:  RoleGrade,
					Kind:  KindText,
					X:     left + labelWidth,
					Y:     top,
					W:     gradeWidth,
					H:     height,
					Color: blue,
					Text:  grade,
					Style: Bold,
					Size:  gradeSize,
					Align: AlignLeft,
				},
			}
		},
	})
	return nil
}

// signatures are two columns spread around: date and authorized signature.
func (l *layouter) signatures(date string) error {
	const (
		sidePadding  = 60.0
		lineWidth    = 2.0
		lineGap      = 8.0
		captionSize  = 12.0
		captionSpace = 1.0
		dateGap      = 5.0
		dateSize     = 14.0
	)
	left, right := contentLeft+sidePadding, contentRight-sidePadding
	around := (right - left - 2*signatureLine) / 4
	centers := []float64{
		left + around + signatureLine/2,
		right - around - signatureLine/2,
	}

	dateCaption, err := l.textElement(RoleDateCaption, "DATE", Regular, captionSize, captionSpace, grey666, signatureLine)
	if err != nil {
		return err
	}
	signatureCaption, err := l.textElement(RoleSignatureCaption, "AUTHORIZED SIGNATURE", Regular, captionSize, captionSpace, grey666, signatureLine)
	if err != nil {
		return err
	}
	height := lineWidth + lineGap + dateCaption.H

	var dateElement *Element
	if date != "" {
		e, err := l.textElement(RoleDate, date, Bold, dateSize, 0, grey333, signatureLine)
		if err != nil {
			return err
		}
		dateElement = &e
		height += dateGap + e.H
	}

	l.blocks = append(l.blocks, block{
		height: height,
		emit: func(top float64) []Element {
			captionTop := top + lineWidth + lineGap
			dateCaption.X, dateCaption.Y = centers[0], captionTop
			signatureCaption.X, signatureCaption.Y = centers[1], captionTop

			elements := make([]Element, 0, 5)
			for _, center := range centers {
				elements = append(elements, Element{
					Role:  RoleSignatureLine,
					Kind:  KindRect,
					X:     center - signatureLine/2,
					Y:     top,
					W:     signatureLine,
					H:     lineWidth,
					Color: grey333,
				})
			}
			elements = append(elements, dateCaption)
			if dateElement != nil {
				e := *dateElement
				e.X, e.Y = centers[0], captionTop+dateCaption.H+dateGap
				elements = append(elements, e)
			}
			return append(elements, signatureCaption)
		},
	})
	return nil
}

// decorations are the fixed background, corner brackets and double border.
func decorations() []Element {
	rect := func(role string, x, y, w, h float64, c color.NRGBA) Element {
		return Element{Role: role, Kind: KindRect, X: x, Y: y, W: w, H: h, Color: c}
	}

	elements := []Element{{
		Role:  RoleBackground,
		Kind:  KindBackground,
		W:     Width,
		H:     Height,
		Color: background,
	}}

	near, far := cornerInset, Width-cornerInset-cornerSize
	top, bottom := cornerInset, Height-cornerInset-cornerSize
	elements = append(elements,
		rect(RoleCorner, near, top, cornerSize, cornerWidth, blue),
		rect(RoleCorner, near, top, cornerWidth, cornerSize, blue),
		rect(RoleCorner, far, top, cornerSize, cornerWidth, blue),
		rect(RoleCorner, far+cornerSize-cornerWidth, top, cornerWidth, cornerSize, blue),
		rect(RoleCorner, near, bottom+cornerSize-cornerWidth, cornerSize, cornerWidth, blue),
		rect(RoleCorner, near, bottom, cornerWidth, cornerSize, blue),
		rect(RoleCorner, far, bottom+cornerSize-cornerWidth, cornerSize, cornerWidth, blue),
		rect(RoleCorner, far+cornerSize-cornerWidth, bottom, cornerWidth, cornerSize, blue),
	)

	// double border: 1 line, 1 gap, 1 line, then the white content box.
	x, y := borderInset, borderInset
	w, h := Width-2*borderInset, Height-2*borderInset
	elements = append(elements,
		rect(RoleBorder, x, y, w, h, blue),
		rect(RoleBorder, x+1, y+1, w-2, h-2, white),
		rect(RoleBorder, x+2, y+2, w-4, h-4, blue),
		rect(RoleBorder, x+borderWidth, y+borderWidth, w-2*borderWidth, h-2*borderWidth, white),
	)
	return elements
}

package raster

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qrcodegen "github.com/geoirb/go-certgen/internal/qrcode"
	"github.com/geoirb/go-certgen/internal/record"
)

func newTestRasterizer(t *testing.T) *Rasterizer {
	r, err := NewRasterizer(DefaultOptions(), qrcodegen.NewCreator())
	require.NoError(t, err)
	return r
}

func byRole(elements []Element, role string) []Element {
	found := make([]Element, 0)
	for _, e := range elements {
		if e.Role == role {
			found = append(found, e)
		}
	}
	return found
}

func TestLayout(t *testing.T) {
	r := newTestRasterizer(t)

	t.Run("full record", func(t *testing.T) {
		rec := record.FromMap(map[string]interface{}{
			"name":   "John Doe",
			"course": "Web Dev",
			"grade":  "A+",
			"date":   "2025-10-27",
		}, "name", "course", "grade", "date")

		elements, err := r.Layout(rec)
		require.NoError(t, err)

		title := byRole(elements, RoleTitle)
		require.Len(t, title, 1)
		assert.Equal(t, "CERTIFICATE", title[0].Text)
		assert.Equal(t, "OF ACHIEVEMENT", byRole(elements, RoleSubtitle)[0].Text)
		assert.Equal(t, "John Doe", byRole(elements, RoleName)[0].Text)
		assert.Equal(t, "Web Dev", byRole(elements, RoleCourse)[0].Text)
		assert.Equal(t, "A+", byRole(elements, RoleGrade)[0].Text)
		assert.Len(t, byRole(elements, RoleGradeLabel), 1)
		assert.Equal(t, "2025-10-27", byRole(elements, RoleDate)[0].Text)
		assert.Equal(t, "DATE", byRole(elements, RoleDateCaption)[0].Text)
		assert.Equal(t, "AUTHORIZED SIGNATURE", byRole(elements, RoleSignatureCaption)[0].Text)
		assert.Len(t, byRole(elements, RoleSignatureLine), 2)
		assert.Len(t, byRole(elements, RoleCorner), 8)
		assert.Empty(t, byRole(elements, RoleQRCode))

		// top to bottom order of the content column
		order := []string{RoleTitle, RoleSubtitle, RoleIntro, RoleName, RoleCompleted, RoleCourse, RoleGrade, RoleDateCaption}
		for i := 1; i < len(order); i++ {
			assert.Less(t, byRole(elements, order[i-1])[0].Y, byRole(elements, order[i])[0].Y, order[i])
		}
	})

	t.Run("without grade and date", func(t *testing.T) {
		rec := record.FromMap(map[string]interface{}{
			"name":   "Jane Smith",
			"course": "Data Science",
		}, "name", "course")

		elements, err := r.Layout(rec)
		require.NoError(t, err)

		assert.Empty(t, byRole(elements, RoleGrade))
		assert.Empty(t, byRole(elements, RoleGradeLabel))
		assert.Empty(t, byRole(elements, RoleDate))
		assert.Len(t, byRole(elements, RoleDateCaption), 1)
		for _, e := range elements {
			assert.NotContains(t, e.Text, "undefined")
			assert.NotContains(t, strings.ToLower(e.Text), "grade")
		}
	})

	t.Run("blank grade", func(t *testing.T) {
		rec := record.FromMap(map[string]interface{}{"name": "Jane", "grade": "  "}, "name", "grade")

		elements, err := r.Layout(rec)
		require.NoError(t, err)
		assert.Empty(t, byRole(elements, RoleGrade))
	})

	t.Run("defaults", func(t *testing.T) {
		elements, err := r.Layout(record.New())
		require.NoError(t, err)

		assert.Equal(t, "Student Name", byRole(elements, RoleName)[0].Text)
		assert.Equal(t, "Course Name", byRole(elements, RoleCourse)[0].Text)
	})

	t.Run("long name fits", func(t *testing.T) {
		rec := record.FromMap(map[string]interface{}{
			"name": "Maximilian Alexander Montgomery-Wellington the Third",
		}, "name")

		elements, err := r.Layout(rec)
		require.NoError(t, err)

		name := byRole(elements, RoleName)[0]
		assert.Less(t, name.Size, 42.0)
		assert.LessOrEqual(t, name.W, contentWidth-2*namePadding+1)
	})

	t.Run("content inside border", func(t *testing.T) {
		rec := record.FromMap(map[string]interface{}{
			"name":   "John Doe",
			"course": "Web Dev",
			"grade":  "A+",
			"date":   "2025-10-27",
		}, "name", "course", "grade", "date")

		elements, err := r.Layout(rec)
		require.NoError(t, err)
		for _, e := range elements {
			if e.Kind != KindText {
				continue
			}
			assert.GreaterOrEqual(t, e.Y, float64(contentTop)-1, e.Role)
			assert.LessOrEqual(t, e.Y+e.H, float64(contentBottom)+1, e.Role)
		}
	})

	t.Run("qr code", func(t *testing.T) {
		rec := record.FromMap(map[string]interface{}{"name": "Ann", "certificate_id": "0001"}, "name", "certificate_id")

		opts := DefaultOptions()
		opts.QRBaseURL = "https://example.com/verify/"
		withBase, err := NewRasterizer(opts, qrcodegen.NewCreator())
		require.NoError(t, err)

		elements, err := withBase.Layout(rec)
		require.NoError(t, err)
		qr := byRole(elements, RoleQRCode)
		require.Len(t, qr, 1)
		assert.Equal(t, "https://example.com/verify/0001", qr[0].Text)

		opts.QRField = ""
		disabled, err := NewRasterizer(opts, qrcodegen.NewCreator())
		require.NoError(t, err)
		elements, err = disabled.Layout(rec)
		require.NoError(t, err)
		assert.Empty(t, byRole(elements, RoleQRCode))
	})
}

func TestRasterize(t *testing.T) {
	r := newTestRasterizer(t)
	rec := record.FromMap(map[string]interface{}{
		"name":           "John Doe",
		"course":         "Web Dev",
		"grade":          "A+",
		"certificate_id": "0001",
	}, "name", "course", "grade", "certificate_id")

	img, err := r.Rasterize(rec)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2000, 1414), img.Bounds())

	width, height := r.Size()
	assert.Equal(t, 2000, width)
	assert.Equal(t, 1414, height)

	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, background, nrgba.NRGBAAt(0, 0))
	// top left corner bracket
	assert.Equal(t, blue, nrgba.NRGBAAt(2*70, 2*31))
	// inside the content box, left of any text
	assert.Equal(t, white, nrgba.NRGBAAt(2*60, 2*350))

	again, err := r.Rasterize(rec)
	require.NoError(t, err)
	assert.Equal(t, nrgba.Pix, again.(*image.NRGBA).Pix)
}

func TestNewRasterizer(t *testing.T) {
	opts := DefaultOptions()
	opts.FontBold = "/not/existing/font.ttf"

	_, err := NewRasterizer(opts, qrcodegen.NewCreator())
	assert.Error(t, err)
}

package docx_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoirb/go-certgen/internal/docx"
	"github.com/geoirb/go-certgen/internal/placeholder"
	"github.com/geoirb/go-certgen/internal/record"
)

// a paragraph with a text box between its runs.
const textBoxBody = `<w:p><w:r><w:t xml:space="preserve">Name: {{name}}</w:t></w:r>` +
	`<w:r><w:pict><v:shape><v:textbox><w:txbxContent>` +
	`<w:p><w:r><w:t>Box {{grade}}</w:t></w:r></w:p>` +
	`<w:p/>` +
	`</w:txbxContent></v:textbox></v:shape></w:pict></w:r>` +
	`<w:r><w:t xml:space="preserve"> Course: {{course}}</w:t></w:r></w:p>` +
	`<w:p w:rsidR="00A1"><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>{{date}}</w:t></w:r></w:p>`

var testLines = []string{
	"CERTIFICATE OF ACHIEVEMENT",
	"This is to certify that {{name}}",
	"has successfully completed the course {{course}}",
	"Grade: {{grade}}",
	"Congratulations {{ name }} on {{course}}!",
}

func newTemplater(t *testing.T, valuesAreRequired bool) *docx.Templater {
	p, err := placeholder.New(valuesAreRequired)
	require.NoError(t, err)
	templater, err := docx.NewTemplater(p)
	require.NoError(t, err)
	return templater
}

func documentXML(t *testing.T, document []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(document), int64(len(document)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func testRecord() *record.Record {
	return record.FromMap(map[string]interface{}{
		"name":   "John Doe",
		"course": "Web Dev & Design",
		"grade":  95.0,
	}, "name", "course", "grade")
}

func TestPlaceholders(t *testing.T) {
	templater := newTemplater(t, false)

	t.Run("distinct names", func(t *testing.T) {
		template, err := docx.Build(testLines)
		require.NoError(t, err)

		names, err := templater.Placeholders(template)
		assert.NoError(t, err)
		assert.Equal(t, []string{"name", "course", "grade"}, names)
	})

	t.Run("twice each", func(t *testing.T) {
		template, err := docx.Build([]string{"{{name}} {{course}}", "{{course}} {{name}}"})
		require.NoError(t, err)

		names, err := templater.Placeholders(template)
		assert.NoError(t, err)
		assert.Equal(t, []string{"name", "course"}, names)
	})

	t.Run("split runs", func(t *testing.T) {
		template, err := docx.Document(`<w:p><w:r><w:t>{{na</w:t></w:r><w:r><w:t>me}}</w:t></w:r></w:p>`)
		require.NoError(t, err)

		names, err := templater.Placeholders(template)
		assert.NoError(t, err)
		assert.Equal(t, []string{"name"}, names)
	})

	t.Run("text box", func(t *testing.T) {
		template, err := docx.Document(textBoxBody)
		require.NoError(t, err)

		names, err := templater.Placeholders(template)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"name", "grade", "course", "date"}, names)
	})

	t.Run("no placeholders", func(t *testing.T) {
		template, err := docx.Build([]string{"plain text"})
		require.NoError(t, err)

		names, err := templater.Placeholders(template)
		assert.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("not a container", func(t *testing.T) {
		names, err := templater.Placeholders([]byte("not a zip"))
		var templateErr *docx.TemplateError
		assert.True(t, errors.As(err, &templateErr))
		assert.Empty(t, names)
	})

	t.Run("document part missing", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("word/other.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte("{{name}}"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		names, err := templater.Placeholders(buf.Bytes())
		var templateErr *docx.TemplateError
		assert.True(t, errors.As(err, &templateErr))
		assert.Empty(t, names)
	})
}

func TestFillIn(t *testing.T) {
	t.Run("substitution", func(t *testing.T) {
		templater := newTemplater(t, false)
		template, err := docx.Build(testLines)
		require.NoError(t, err)
		original := append([]byte(nil), template...)

		document, err := templater.FillIn(template, testRecord())
		require.NoError(t, err)

		content := documentXML(t, document)
		assert.Contains(t, content, "This is to certify that John Doe")
		assert.Contains(t, content, "the course Web Dev &amp; Design")
		assert.Contains(t, content, "Grade: 95")
		assert.Contains(t, content, "Congratulations John Doe on Web Dev &amp; Design!")
		assert.NotContains(t, content, "{{")
		assert.Equal(t, original, template)
	})

	t.Run("template without placeholders", func(t *testing.T) {
		templater := newTemplater(t, true)
		template, err := docx.Build([]string{"CERTIFICATE", "OF ACHIEVEMENT"})
		require.NoError(t, err)

		for _, r := range []*record.Record{testRecord(), record.New()} {
			document, err := templater.FillIn(template, r)
			require.NoError(t, err)
			assert.Equal(t, template, document)
		}
	})

	t.Run("split runs", func(t *testing.T) {
		templater := newTemplater(t, false)
		template, err := docx.Document(
			`<w:p><w:r><w:t>Dear {{na</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>me}}!</w:t></w:r><w:r><w:t xml:space="preserve"> untouched</w:t></w:r></w:p>`,
		)
		require.NoError(t, err)

		document, err := templater.FillIn(template, testRecord())
		require.NoError(t, err)

		content := documentXML(t, document)
		assert.Contains(t, content, `<w:t xml:space="preserve">Dear John Doe</w:t>`)
		assert.Contains(t, content, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">!</w:t>`)
		assert.Contains(t, content, `<w:t xml:space="preserve"> untouched</w:t>`)
	})

	t.Run("text box", func(t *testing.T) {
		templater := newTemplater(t, false)
		template, err := docx.Document(textBoxBody)
		require.NoError(t, err)

		r := testRecord()
		r.Set("date", "2025-10-27")
		document, err := templater.FillIn(template, r)
		require.NoError(t, err)

		content := documentXML(t, document)
		assert.Contains(t, content, `<w:t xml:space="preserve">Name: John Doe</w:t>`)
		assert.Contains(t, content, `<w:t xml:space="preserve">Box 95</w:t>`)
		assert.Contains(t, content, `<w:t xml:space="preserve"> Course: Web Dev &amp; Design</w:t></w:r></w:p>`)
		assert.Contains(t, content, `<w:jc w:val="center"/></w:pPr><w:r><w:t xml:space="preserve">2025-10-27</w:t>`)
		assert.NotContains(t, content, "{{")
		assert.Contains(t, content, `<w:p/>`)
	})

	t.Run("unclosed tag after text box", func(t *testing.T) {
		templater := newTemplater(t, false)
		template, err := docx.Document(`<w:p><w:r><w:t>{{na</w:t></w:r>` +
			`<w:r><w:pict><w:txbxContent><w:p><w:r><w:t>me}}</w:t></w:r></w:p></w:txbxContent></w:pict></w:r></w:p>`)
		require.NoError(t, err)

		_, err = templater.FillIn(template, testRecord())
		assert.True(t, errors.Is(err, placeholder.ErrUnclosedTag))
	})

	t.Run("line breaks", func(t *testing.T) {
		templater := newTemplater(t, false)
		template, err := docx.Build([]string{"{{address}}"})
		require.NoError(t, err)

		r := record.New()
		r.Set("address", "Main st. 1\nSpringfield")
		document, err := templater.FillIn(template, r)
		require.NoError(t, err)

		assert.Contains(t, documentXML(t, document), `Main st. 1</w:t><w:br/><w:t xml:space="preserve">Springfield`)
	})

	t.Run("missing value renders empty", func(t *testing.T) {
		templater := newTemplater(t, false)
		template, err := docx.Build([]string{"Date: {{date}}."})
		require.NoError(t, err)

		document, err := templater.FillIn(template, testRecord())
		require.NoError(t, err)
		assert.Contains(t, documentXML(t, document), "Date: .")
	})

	t.Run("missing value required", func(t *testing.T) {
		templater := newTemplater(t, true)
		template, err := docx.Build([]string{"Date: {{date}}."})
		require.NoError(t, err)

		_, err = templater.FillIn(template, testRecord())
		assert.True(t, errors.Is(err, placeholder.ErrValueNotFound))
	})

	t.Run("unclosed tag", func(t *testing.T) {
		templater := newTemplater(t, false)
		template, err := docx.Build([]string{"Dear {{name"})
		require.NoError(t, err)

		_, err = templater.FillIn(template, testRecord())
		assert.True(t, errors.Is(err, placeholder.ErrUnclosedTag))
	})

	t.Run("not a container", func(t *testing.T) {
		templater := newTemplater(t, false)
		_, err := templater.FillIn([]byte("plain"), testRecord())
		assert.Error(t, err)

		_, err = templater.FillIn(nil, testRecord())
		assert.Error(t, err)
	})
}

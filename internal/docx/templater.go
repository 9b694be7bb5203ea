package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/geoirb/go-certgen/internal/placeholder"
	"github.com/geoirb/go-certgen/internal/record"
)

const (
	documentPart = "word/document.xml"

	partRegexp      = `^word/(document|header[0-9]*|footer[0-9]*)\.xml$`
	paragraphRegexp = `<w:p(?:\s[^>]*)?/?>|</w:p>`
	textRegexp      = `(?s)(<w:t(?:\s[^>]*)?>)(.*?)</w:t>`

	preserveTextTag = `<w:t xml:space="preserve">`
	closeTextTag    = `</w:t>`
	closeParagraph  = `</w:p>`
	lineBreak       = closeTextTag + `<w:br/>` + preserveTextTag
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type placeholderFinder interface {
	Is(text string) bool
	Find(text string) []placeholder.Tag
	Names(text string) []string
	Check(text string) error
	GetValue(r *record.Record, name string) (string, error)
}

// Templater fills docx templates with record values.
type Templater struct {
	placeholder placeholderFinder

	partReg      *regexp.Regexp
	paragraphReg *regexp.Regexp
	textReg      *regexp.Regexp
}

// NewTemplater ...
func NewTemplater(
	placeholder placeholderFinder,
) (t *Templater, err error) {
	t = &Templater{
		placeholder: placeholder,
	}
	if t.partReg, err = regexp.Compile(partRegexp); err != nil {
		return
	}
	if t.paragraphReg, err = regexp.Compile(paragraphRegexp); err != nil {
		return
	}
	t.textReg, err = regexp.Compile(textRegexp)
	return
}

// Placeholders returns distinct placeholder names of the template body.
// Error is always *TemplateError.
func (t *Templater) Placeholders(template []byte) ([]string, error) {
	zr, err := open(template)
	if err != nil {
		return []string{}, &TemplateError{Err: err}
	}
	f := find(zr, documentPart)
	if f == nil {
		return []string{}, &TemplateError{Err: errNoDocumentPart}
	}
	content, err := read(f)
	if err != nil {
		return []string{}, &TemplateError{Err: err}
	}

	var text strings.Builder
	for _, runs := range t.paragraphs(content) {
		for _, rn := range runs {
			text.WriteString(rn.text)
		}
		text.WriteByte('\n')
	}
	if !t.placeholder.Is(text.String()) {
		return []string{}, nil
	}
	return t.placeholder.Names(text.String()), nil
}

// FillIn returns a new document with every placeholder replaced by the record value.
// template is not modified; a template without placeholders is returned as is.
func (t *Templater) FillIn(template []byte, r *record.Record) ([]byte, error) {
	zr, err := open(template)
	if err != nil {
		return nil, err
	}
	if find(zr, documentPart) == nil {
		return nil, errNoDocumentPart
	}

	filled := make(map[string]string)
	for _, f := range zr.File {
		if !t.partReg.MatchString(f.Name) {
			continue
		}
		content, err := read(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		result, isChanged, err := t.fillInPart(content, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		if isChanged {
			filled[f.Name] = result
		}
	}

	if len(filled) == 0 {
		document := make([]byte, len(template))
		copy(document, template)
		return document, nil
	}

	var result bytes.Buffer
	zw := zip.NewWriter(&result)
	for _, f := range zr.File {
		content, isExist := filled[f.Name]
		if !isExist {
			if err = zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   f.Method,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err = io.WriteString(w, content); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return result.Bytes(), nil
}

func (t *Templater) fillInPart(content string, r *record.Record) (string, bool, error) {
	edits := make([]edit, 0)
	for _, runs := range t.paragraphs(content) {
		paragraphEdits, err := t.fillInParagraph(runs, r)
		if err != nil {
			return content, false, err
		}
		edits = append(edits, paragraphEdits...)
	}
	if len(edits) == 0 {
		return content, false, nil
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	var result strings.Builder
	prev := 0
	for _, e := range edits {
		result.WriteString(content[prev:e.start])
		result.WriteString(e.text)
		prev = e.end
	}
	result.WriteString(content[prev:])
	return result.String(), true, nil
}

// text run of a paragraph.
type run struct {
	// offsets in part
	start, end int
	openTag    string
	// offsets in joined paragraph text
	textStart, textEnd int
	text               string
}

// edit replaces content[start:end] of a part.
type edit struct {
	start, end int
	text       string
}

// paragraphs returns text runs of every paragraph of the part. A run belongs
// to the innermost open paragraph, so paragraphs of text boxes nested into a
// paragraph are separate from the runs around them.
func (t *Templater) paragraphs(content string) [][]run {
	tags := t.paragraphReg.FindAllStringIndex(content, -1)
	texts := t.textReg.FindAllStringSubmatchIndex(content, -1)

	result := make([][]run, 0, len(tags)/2)
	stack := make([]int, 0)
	next := 0
	for _, loc := range texts {
		for ; next < len(tags) && tags[next][0] < loc[0]; next++ {
			tag := content[tags[next][0]:tags[next][1]]
			switch {
			case tag == closeParagraph:
				if len(stack) != 0 {
					stack = stack[:len(stack)-1]
				}
			case strings.HasSuffix(tag, "/>"):
			default:
				result = append(result, nil)
				stack = append(stack, len(result)-1)
			}
		}
		if len(stack) == 0 {
			continue
		}
		owner := stack[len(stack)-1]
		textStart := 0
		if n := len(result[owner]); n != 0 {
			textStart = result[owner][n-1].textEnd
		}
		text := html.UnescapeString(content[loc[4]:loc[5]])
		result[owner] = append(result[owner], run{
			start:     loc[0],
			end:       loc[1],
			openTag:   content[loc[2]:loc[3]],
			textStart: textStart,
			textEnd:   textStart + len(text),
			text:      text,
		})
	}
	return result
}

// fillInParagraph joins text runs of the paragraph, so a tag split by the
// editor into several runs still matches. The value is written into the run
// where the tag starts, the rest of the tag is cut from the following runs.
func (t *Templater) fillInParagraph(runs []run, r *record.Record) ([]edit, error) {
	if len(runs) == 0 {
		return nil, nil
	}
	var joined strings.Builder
	for _, rn := range runs {
		joined.WriteString(rn.text)
	}
	full := joined.String()

	if err := t.placeholder.Check(full); err != nil {
		return nil, err
	}
	if !t.placeholder.Is(full) {
		return nil, nil
	}
	tags := t.placeholder.Find(full)

	contents := make([]strings.Builder, len(runs))
	touched := make([]bool, len(runs))
	literal := func(from, to int) {
		for i := range runs {
			s, e := max(from, runs[i].textStart), min(to, runs[i].textEnd)
			if s < e {
				contents[i].WriteString(xmlEscaper.Replace(full[s:e]))
			}
		}
	}

	pos := 0
	for _, tag := range tags {
		literal(pos, tag.Start)
		value, err := t.placeholder.GetValue(r, tag.Name)
		if err != nil {
			return nil, err
		}
		for i := range runs {
			if runs[i].textStart < tag.End && tag.Start < runs[i].textEnd {
				touched[i] = true
			}
		}
		owner := runOwner(runs, tag.Start)
		contents[owner].WriteString(escapeValue(value))
		pos = tag.End
	}
	literal(pos, len(full))

	edits := make([]edit, 0, len(runs))
	for i, rn := range runs {
		if !touched[i] {
			continue
		}
		openTag := rn.openTag
		if !strings.Contains(openTag, "xml:space") {
			openTag = preserveTextTag
		}
		edits = append(edits, edit{
			start: rn.start,
			end:   rn.end,
			text:  openTag + contents[i].String() + closeTextTag,
		})
	}
	return edits, nil
}

func runOwner(runs []run, offset int) int {
	for i := range runs {
		if offset >= runs[i].textStart && offset < runs[i].textEnd {
			return i
		}
	}
	return len(runs) - 1
}

func escapeValue(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(xmlEscaper.Replace(value), "\n", lineBreak)
}

func open(template []byte) (*zip.Reader, error) {
	if len(template) == 0 {
		return nil, errEmptyTemplate
	}
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errNotContainer, err)
	}
	return zr, nil
}

func find(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func read(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

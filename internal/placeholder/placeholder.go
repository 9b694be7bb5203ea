package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/geoirb/go-certgen/internal/record"
)

// Tag is a placeholder occurrence in text.
type Tag struct {
	// Start and End are byte offsets of the whole "{{...}}" token.
	Start, End int
	Name       string
}

// Placeholder finds {{name}} tags and resolves them against records.
type Placeholder struct {
	tagReg *regexp.Regexp

	valuesAreRequired bool
}

// New ...
// valuesAreRequired - a tag without record field is an error instead of empty text.
func New(
	valuesAreRequired bool,
) (p *Placeholder, err error) {
	p = &Placeholder{
		valuesAreRequired: valuesAreRequired,
	}
	p.tagReg, err = regexp.Compile(tagRegexp)
	return
}

// Is returns true if str contains a placeholder.
func (p *Placeholder) Is(str string) bool {
	return p.tagReg.MatchString(str)
}

// Find returns all tags of text in order.
func (p *Placeholder) Find(text string) []Tag {
	matches := p.tagReg.FindAllStringSubmatchIndex(text, -1)
	tags := make([]Tag, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, Tag{
			Start: m[0],
			End:   m[1],
			Name:  strings.TrimSpace(text[m[2]:m[3]]),
		})
	}
	return tags
}

// Names returns distinct placeholder names in order of first appearance.
func (p *Placeholder) Names(text string) []string {
	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, tag := range p.Find(text) {
		if _, isExist := seen[tag.Name]; isExist {
			continue
		}
		seen[tag.Name] = struct{}{}
		names = append(names, tag.Name)
	}
	return names
}

// Check returns error if text has delimiters which are not part of a tag.
func (p *Placeholder) Check(text string) error {
	rest := p.tagReg.ReplaceAllString(text, "")
	if i := strings.Index(rest, openDelim); i >= 0 {
		return fmt.Errorf("%w: %q", ErrUnclosedTag, excerpt(rest[i:]))
	}
	if i := strings.Index(rest, closeDelim); i >= 0 {
		start := i - excerptLen
		if start < 0 {
			start = 0
		}
		return fmt.Errorf("%w: %q", ErrUnopenedTag, rest[start:i+len(closeDelim)])
	}
	return nil
}

// GetValue returns text of the record field named by placeholder.
func (p *Placeholder) GetValue(r *record.Record, name string) (string, error) {
	value, isExist := r.Text(name)
	if !isExist && p.valuesAreRequired {
		return "", fmt.Errorf("%w: tag {{%s}}", ErrValueNotFound, name)
	}
	return value, nil
}

const excerptLen = 20

func excerpt(s string) string {
	if len(s) > excerptLen {
		return s[:excerptLen] + "..."
	}
	return s
}

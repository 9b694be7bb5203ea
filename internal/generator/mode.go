package generator

import (
	"fmt"
	"strings"
)

// Mode selects the output formats of a run.
type Mode string

// Modes.
const (
	ModeDOCX Mode = "docx"
	ModePDF  Mode = "pdf"
	ModeBoth Mode = "both"
)

// Formats file extensions.
const (
	DOCX = "docx"
	PDF  = "pdf"
)

// ParseMode ...
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeDOCX, ModePDF, ModeBoth:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// DOCX reports whether the mode produces documents.
func (m Mode) DOCX() bool {
	return m == ModeDOCX || m == ModeBoth
}

// PDF reports whether the mode produces pdf files.
func (m Mode) PDF() bool {
	return m == ModePDF || m == ModeBoth
}

// Label is the human name of the output formats.
func (m Mode) Label() string {
	if m == ModeBoth {
		return "Word and PDF"
	}
	return strings.ToUpper(string(m))
}

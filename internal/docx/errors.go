package docx

import (
	"errors"
	"fmt"
)

var (
	errNotContainer   = errors.New("template is not a docx container")
	errNoDocumentPart = errors.New("word/document.xml not found in template")
	errEmptyTemplate  = errors.New("template is empty")
)

// TemplateError means the template container or its textual part could not be read.
// Placeholder preview treats it as non-fatal.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template: %s", e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

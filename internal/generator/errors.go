package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecords run without records.
	ErrNoRecords = errors.New("no records to generate")
	// ErrNoTemplate run without template.
	ErrNoTemplate = errors.New("template is not loaded")
	// ErrUnknownMode ...
	ErrUnknownMode = errors.New("unknown mode")
	// ErrRunning session already runs.
	ErrRunning = errors.New("generation is running")
	// ErrUnknownPolicy ...
	ErrUnknownPolicy = errors.New("unknown error policy")

	errAbandoned = errors.New("record is abandoned")
)

// RenderError is a failure to fill in the template for a record.
type RenderError struct {
	Record string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("generate DOCX for %s: %v", e.Record, e.Err)
}

// Unwrap ...
func (e *RenderError) Unwrap() error {
	return e.Err
}

// RasterError is a failure to draw or compose the certificate of a record.
type RasterError struct {
	Record string
	Err    error
}

func (e *RasterError) Error() string {
	return fmt.Sprintf("generate PDF for %s: %v", e.Record, e.Err)
}

// Unwrap ...
func (e *RasterError) Unwrap() error {
	return e.Err
}

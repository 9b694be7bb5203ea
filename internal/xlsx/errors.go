package xlsx

import (
	"errors"
	"fmt"
)

var (
	errUnknownType = errors.New("unknown spreadsheet type")
	errNoSheets    = errors.New("spreadsheet has no sheets")
	errMalformed   = errors.New("malformed spreadsheet")
)

// ParseError means the spreadsheet could not be read, no records are loaded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse spreadsheet: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

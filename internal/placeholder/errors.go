package placeholder

import (
	"errors"
)

var (
	// ErrValueNotFound is returned for a tag without record field when values are required.
	ErrValueNotFound = errors.New("value not found")
	// ErrUnclosedTag is returned for "{{" without matching "}}".
	ErrUnclosedTag = errors.New("unclosed tag")
	// ErrUnopenedTag is returned for "}}" without matching "{{".
	ErrUnopenedTag = errors.New("unopened tag")
)

package parser

import (
	"errors"
)

var (
	errTypeNotDefined = errors.New("file type is not defined")
)

package path

import "errors"

var (
	errNotDir        = errors.New("not a directory")
	errEmptyFileName = errors.New("empty file name")
)

package pdf

import "errors"

var (
	errEmptyImage = errors.New("empty image")
	errCompose    = errors.New("compose pdf")
	errInvalid    = errors.New("invalid pdf")
)

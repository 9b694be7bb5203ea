package raster

import (
	"errors"
)

var (
	errUnknownKind = errors.New("unknown element kind")
)

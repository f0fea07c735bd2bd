package validator

import "errors"

// ErrInvalidFormat is returned by parsers when the raw value cannot be read.
var ErrInvalidFormat = errors.New("invalid format")

package inquiry

import "errors"

var (
	ErrSubmissionFailed = errors.New("submission failed")
	ErrInvalidCatalog   = errors.New("invalid catalog")
	ErrUnknownForm      = errors.New("unknown form")
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidConfig    = errors.New("invalid inquiry config")
)

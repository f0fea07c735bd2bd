package i18n

import "errors"

var (
	ErrNoTranslations       = errors.New("no translations found")
	ErrLanguageNotSupported = errors.New("language not supported")
	ErrLoadingCancelled     = errors.New("loading translations cancelled")
	ErrFailedToReadFile     = errors.New("failed to read translation file")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")
)

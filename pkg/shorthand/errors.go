package shorthand

import "errors"

var (
	// ErrEmptyInput is returned for an empty shorthand string.
	ErrEmptyInput = errors.New("shorthand: empty input")
	// ErrParse wraps the YAML parser diagnostic for text that does not parse.
	ErrParse = errors.New("shorthand: parse failure")
	// ErrUnsupportedKey is returned when a mapping key is a sequence or mapping.
	ErrUnsupportedKey = errors.New("shorthand: unsupported mapping key")
	// ErrNotMapping is returned when the document root is not a mapping.
	ErrNotMapping = errors.New("shorthand: document is not a mapping")
)

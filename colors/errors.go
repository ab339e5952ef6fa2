package colors

import "errors"

var (
	// ErrInvalidFormat reports malformed color input such as a bad hex string.
	ErrInvalidFormat = errors.New("invalid color format")
	// ErrUnsupportedCapability reports a feature the runtime cannot provide.
	ErrUnsupportedCapability = errors.New("capability not supported")
	// ErrEmptyInput reports a degenerate input, e.g. an empty pixel buffer.
	ErrEmptyInput = errors.New("empty input")
)

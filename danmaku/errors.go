package danmaku

import "errors"

var (
	// ErrInvalidParams is wrapped by every pattern parameter validation error.
	ErrInvalidParams = errors.New("invalid pattern parameters")

	// ErrInvalidPath is wrapped by every path construction error.
	ErrInvalidPath = errors.New("invalid path")
)

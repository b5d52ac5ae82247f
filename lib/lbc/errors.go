package lbc

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is returned at query construction time for malformed
// filter input. It is never retried.
var ErrInvalidValue = errors.New("invalid value")

// ErrRequest covers transport and backend failures that are not an
// anti-bot block.
var ErrRequest = errors.New("request failed")

// ErrDatadome means the backend rejected the request as bot traffic.
// It wraps ErrRequest so errors.Is(err, ErrRequest) also holds.
var ErrDatadome = fmt.Errorf("%w: blocked by datadome", ErrRequest)

// ErrNotFound is returned when a single-resource lookup hits an ad or
// user that does not exist.
var ErrNotFound = errors.New("not found")

func invalidValue(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}

package feed

import (
	"errors"
	"fmt"
)

var (
	// ErrCreationFailed means the insert appeared to succeed but the
	// read-back could not confirm the row. The record's existence is left
	// ambiguous; callers resolve it with a subsequent read.
	ErrCreationFailed = errors.New("created post could not be confirmed")

	// ErrStoreUnavailable wraps transient I/O failures against either store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports a bad input shape. It is never retried and always
// maps to a client error at the HTTP boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

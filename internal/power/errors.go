package power

import (
	"errors"
	"fmt"
)

// ErrInvalidYears is returned when the requested start year is after the
// end year.
var ErrInvalidYears = errors.New("invalid year range")

// RetrievalError reports that climate data could not be obtained: the
// service was unreachable, answered with a non-success status, or sent a
// body without the expected per-variable structure.
type RetrievalError struct {
	Op     string
	Status int // HTTP status when the service answered, else 0
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve climate data: %s: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// MalformedDateError reports a series key that is not a YYYYMMDD date.
type MalformedDateError struct {
	Key string
	Err error
}

func (e *MalformedDateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed date key %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("malformed date key %q", e.Key)
}

func (e *MalformedDateError) Unwrap() error { return e.Err }

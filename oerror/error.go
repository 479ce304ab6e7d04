package oerror

import "fmt"

// LeapError is the error type used for internal invariant failures.
type LeapError struct {
	Err string
}

// New creates a new LeapError with a formatted message.
func New(format string, args ...interface{}) *LeapError {
	return &LeapError{Err: fmt.Sprintf(format, args...)}
}

func (e *LeapError) Error() string {
	return e.Err
}

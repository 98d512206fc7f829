package share

import "fmt"

// TooLargeError reports a share link longer than the configured ceiling
type TooLargeError struct {
	Length int
	Limit  int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("share link is %d bytes, exceeds limit of %d", e.Length, e.Limit)
}

// DecodeError reports a data parameter that could not be turned back into a resume
type DecodeError struct {
	Stage string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode shared resume (%s): %v", e.Stage, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

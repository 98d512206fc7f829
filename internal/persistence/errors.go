package persistence

import "fmt"

// CorruptDataError reports a stored value that exists but cannot be decoded into a resume
type CorruptDataError struct {
	Key   string
	Cause error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("stored resume %q is corrupt: %v", e.Key, e.Cause)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Cause
}

// StoreError reports a failure of the underlying store
type StoreError struct {
	Op    string
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Key, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

package generation

import "fmt"

// GenerationError reports that the completion service call failed.
// It is surfaced to users as a generic "try again" failure; no retry is attempted.
type GenerationError struct {
	Operation string
	Cause     error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Operation)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// PromptError reports a prompt template that could not be rendered
type PromptError struct {
	Key   string
	Cause error
}

func (e *PromptError) Error() string {
	return fmt.Sprintf("prompt %s: %v", e.Key, e.Cause)
}

func (e *PromptError) Unwrap() error {
	return e.Cause
}

// Package server provides the local HTTP API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrBusy indicates the same operation is already running for the session
type ErrBusy struct {
	Operation builder.Operation
}

func (e *ErrBusy) Error() string {
	return fmt.Sprintf("%s already in progress", e.Operation)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		busyErr     *ErrBusy
		requestErr  *ErrValidation
		resumeErr   *types.ValidationError
		tooLargeErr *share.TooLargeError
		decodeErr   *share.DecodeError
		templateErr *rendering.TemplateError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &busyErr):
		return http.StatusConflict
	case errors.As(err, &requestErr), errors.As(err, &decodeErr), errors.As(err, &templateErr):
		return http.StatusBadRequest
	case errors.As(err, &resumeErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-intel/internal/pipeline"
	"github.com/jonathan/resume-intel/internal/ranking"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a stored analysis does not exist
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.ID)
}

// ErrStoreDisabled is returned by persistence endpoints when no database is configured.
var ErrStoreDisabled = errors.New("result store is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var notFound *ErrNotFound
	var unknownRole *ranking.UnknownRoleError

	switch {
	case errors.As(err, &validation), errors.Is(err, pipeline.ErrNilDocument), errors.Is(err, pipeline.ErrEmptyJobDescription):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &unknownRole):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

package handler

import (
	"context"
	"errors"

	"github.com/scriba/schema-api/internal/model"
	"github.com/scriba/schema-api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrSchemeIDRequired),
		errors.Is(err, service.ErrSchemeIDTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "scheme_id", Message: err.Error()}})

	// ===== Checker capacity → 503 =====
	case errors.Is(err, service.ErrCheckerBusy),
		errors.Is(err, context.DeadlineExceeded):
		return model.NewUnavailableError("checker is at capacity, try again shortly")

	// ===== Upstream portal failures → 502 =====
	case errors.Is(err, service.ErrCheckFailed):
		return model.NewUpstreamError(err.Error())

	// ===== Storage errors (original ClientError mapping) =====
	case errors.Is(err, service.ErrTableMissing):
		return model.NewStorageError("transcription table not found, ensure the table exists")
	case errors.Is(err, service.ErrStorageThrottled):
		return model.NewThrottledError("storage throughput exceeded, please try again later")
	case errors.Is(err, service.ErrStorageForbidden):
		return model.NewForbiddenError("access denied to storage, check credentials and permissions")
	case errors.Is(err, service.ErrStorageUnavailable):
		return model.NewStorageError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Scheme Checker Errors =====
var (
	ErrSchemeIDRequired = errors.New("scheme_id is required")
	ErrSchemeIDTooLong  = errors.New("scheme_id exceeds maximum length")
	ErrCheckFailed      = errors.New("scheme check failed")
	ErrCheckerBusy      = errors.New("no browser available to perform the check")
)

// ===== Transcription Errors =====
var (
	ErrStorageUnavailable = errors.New("transcription store unavailable")
	ErrTableMissing       = errors.New("transcription table not found")
	ErrStorageThrottled   = errors.New("transcription store throughput exceeded")
	ErrStorageForbidden   = errors.New("access to transcription store denied")
)

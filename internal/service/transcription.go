package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/scriba/schema-api/internal/database"
	"github.com/scriba/schema-api/internal/model"
)

// TranscriptionStore persists transcription records.
type TranscriptionStore interface {
	Put(ctx context.Context, tr *model.Transcription) error
}

// TranscriptionService validates and persists transcription records.
type TranscriptionService struct {
	store TranscriptionStore
	now   func() time.Time
}

// TranscriptionServiceConfig holds transcription service dependencies
type TranscriptionServiceConfig struct {
	Store TranscriptionStore

	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(cfg TranscriptionServiceConfig) *TranscriptionService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TranscriptionService{store: cfg.Store, now: now}
}

// Save validates the request, stamps the record, and writes it to the store.
// Field-level problems are reported through the returned field errors; only
// storage problems surface as an error.
func (s *TranscriptionService) Save(ctx context.Context, req *model.SaveTranscriptionRequest) (*model.Transcription, []model.FieldError, error) {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	duration, err := req.DurationSeconds()
	if err != nil {
		// Validate already vets duration; this guards direct callers.
		return nil, []model.FieldError{{Field: "duration", Message: "duration must be a number of seconds"}}, nil
	}

	tr := &model.Transcription{
		TranscribeID: req.TranscribeID,
		DoctorID:     req.DoctorID,
		Duration:     duration,
		Transcribe:   req.Transcribe,
		Notes:        req.Notes,
		Timestamp:    s.now().UTC(),
	}

	if err := s.store.Put(ctx, tr); err != nil {
		return nil, nil, classifyStorageError(err)
	}

	slog.Info("transcription saved",
		slog.String("transcribe_id", tr.TranscribeID),
		slog.String("doctor_id", tr.DoctorID),
		slog.Int("duration", tr.Duration),
	)
	return tr, nil, nil
}

// classifyStorageError maps database sentinel errors onto service errors.
func classifyStorageError(err error) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrTableMissing, err)
	case errors.Is(err, database.ErrThroughput):
		return fmt.Errorf("%w: %v", ErrStorageThrottled, err)
	case errors.Is(err, database.ErrAccessDenied):
		return fmt.Errorf("%w: %v", ErrStorageForbidden, err)
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}

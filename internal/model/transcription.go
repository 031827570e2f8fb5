package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Transcription is a saved transcription record as stored in DynamoDB.
type Transcription struct {
	TranscribeID string    `json:"transcribeId" dynamodbav:"transcribeId"`
	DoctorID     string    `json:"doctorId" dynamodbav:"doctorId"`
	Duration     int       `json:"duration" dynamodbav:"duration"`
	Transcribe   string    `json:"transcribe" dynamodbav:"transcribe"`
	Notes        string    `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
	Timestamp    time.Time `json:"timestamp" dynamodbav:"timestamp"`
}

// SaveTranscriptionRequest is the request body for POST /save/transcribe.
// Duration is a json.Number so clients may send it as a number or a numeric
// string; both are coerced to an int.
type SaveTranscriptionRequest struct {
	TranscribeID string      `json:"transcribeId"`
	DoctorID     string      `json:"doctorId"`
	Duration     json.Number `json:"duration"`
	Transcribe   string      `json:"transcribe"`
	Notes        string      `json:"notes,omitempty"`
}

// Validate checks required fields and returns field-level errors.
func (r *SaveTranscriptionRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.TranscribeID) == "" {
		errs = append(errs, FieldError{Field: "transcribeId", Message: "transcribeId is required"})
	}
	if strings.TrimSpace(r.DoctorID) == "" {
		errs = append(errs, FieldError{Field: "doctorId", Message: "doctorId is required"})
	}
	if strings.TrimSpace(r.Transcribe) == "" {
		errs = append(errs, FieldError{Field: "transcribe", Message: "transcribe is required"})
	}
	if r.Duration.String() == "" {
		errs = append(errs, FieldError{Field: "duration", Message: "duration is required"})
	} else if d, err := r.DurationSeconds(); err != nil {
		errs = append(errs, FieldError{Field: "duration", Message: "duration must be a number of seconds"})
	} else if d < 0 {
		errs = append(errs, FieldError{Field: "duration", Message: "duration must not be negative"})
	}

	return errs
}

// DurationSeconds coerces the duration field to an int. Fractional values
// truncate toward zero, so "12.5" and 12.9 both become 12.
func (r *SaveTranscriptionRequest) DurationSeconds() (int, error) {
	s := strings.TrimSpace(r.Duration.String())
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// SaveTranscriptionResponse is the response body for a successful save.
type SaveTranscriptionResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    *Transcription `json:"data"`
}

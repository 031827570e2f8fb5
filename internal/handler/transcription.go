package handler

import (
	"context"
	"net/http"

	"github.com/scriba/schema-api/internal/model"
)

// TranscriptionSaver interface for the handler
type TranscriptionSaver interface {
	Save(ctx context.Context, req *model.SaveTranscriptionRequest) (*model.Transcription, []model.FieldError, error)
}

// TranscriptionHandler handles transcription HTTP requests
type TranscriptionHandler struct {
	transcriptions TranscriptionSaver
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(transcriptions TranscriptionSaver) *TranscriptionHandler {
	return &TranscriptionHandler{transcriptions: transcriptions}
}

// Save handles POST /save/transcribe - persist a transcription record
func (h *TranscriptionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req model.SaveTranscriptionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	tr, fieldErrs, err := h.transcriptions.Save(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if len(fieldErrs) > 0 {
		WriteError(w, model.NewValidationError(fieldErrs))
		return
	}

	WriteJSON(w, http.StatusOK, model.SaveTranscriptionResponse{
		Status:  "success",
		Message: "Transcription saved successfully",
		Data:    tr,
	})
}

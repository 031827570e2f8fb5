package handler

import (
	"context"
	"net/http"

	"github.com/scriba/schema-api/internal/model"
)

// SchemeChecker interface for the handler
type SchemeChecker interface {
	Check(ctx context.Context, schemeID string) (*model.CheckResult, error)
}

// CheckerHandler handles scheme status HTTP requests
type CheckerHandler struct {
	checker SchemeChecker
}

// NewCheckerHandler creates a new checker handler
func NewCheckerHandler(checker SchemeChecker) *CheckerHandler {
	return &CheckerHandler{checker: checker}
}

// CheckStatus handles POST /check_status - look up a scheme ID on the portal
func (h *CheckerHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	var req model.CheckRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.checker.Check(r.Context(), req.SchemeID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

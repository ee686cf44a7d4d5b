package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/p-n-ai/pai-prep/internal/corpus"
	"github.com/p-n-ai/pai-prep/internal/roadmap"
	"github.com/p-n-ai/pai-prep/internal/schedule"
)

// Error codes returned in the envelope.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeEmpty      = "EMPTY"
	CodeForbidden  = "FORBIDDEN"
	CodeInternal   = "INTERNAL"
)

type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("encoding response failed", "error", err)
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Error: &apiError{Code: code, Message: message}})
}

// writeError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roadmap.ErrDayNotFound), errors.Is(err, corpus.ErrNotFound):
		writeFailure(w, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, corpus.ErrEmpty):
		writeFailure(w, http.StatusNotFound, CodeEmpty, err.Error())
	case errors.Is(err, corpus.ErrOutsideRoot):
		writeFailure(w, http.StatusForbidden, CodeForbidden, "access denied")
	case errors.Is(err, schedule.ErrInvalidDay),
		errors.Is(err, schedule.ErrInvalidQuota),
		errors.Is(err, schedule.ErrInvalidSize):
		writeFailure(w, http.StatusBadRequest, CodeBadRequest, err.Error())
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeFailure(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}

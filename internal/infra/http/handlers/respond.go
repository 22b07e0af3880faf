package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pipewise/pipewise/internal/usecase"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto HTTP statuses. CONFLICT covers
// both the duplicate-email case and a lost row-lock race; callers may retry
// the latter with fresh state.
func writeError(w http.ResponseWriter, err error) {
	code := usecase.ErrorCode(err)

	status := http.StatusInternalServerError
	switch code {
	case usecase.CodeValidation:
		status = http.StatusUnprocessableEntity
	case usecase.CodeNotFound:
		status = http.StatusNotFound
	case usecase.CodeInvalidTransition, usecase.CodeConflict:
		status = http.StatusConflict
	case usecase.CodeDependencyUnavailable:
		status = http.StatusServiceUnavailable
	}

	if code == "" {
		code = "INTERNAL_ERROR"
	}

	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

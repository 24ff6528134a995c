package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"finplan/internal/manager"
	"finplan/internal/planner"
	"finplan/internal/training"
	"finplan/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case planner.IsValidation(err):
		return http.StatusBadRequest
	case planner.IsModelUnavailable(err):
		return http.StatusServiceUnavailable
	case training.IsBusy(err), manager.IsArtifactsLocked(err):
		return http.StatusConflict
	case training.IsTrainingData(err):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// writeJSON encodes v before committing status, so a value that cannot be
// encoded becomes a 500 instead of a success code with a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		zlog.Error().Err(err).Msg("encode response")
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

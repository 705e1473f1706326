package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
)

// APIError is the standard error response for simulation APIs.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, code int, errMsg, codeStr string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(APIError{
		Error:   errMsg,
		Code:    codeStr,
		Message: errMsg,
	})
}

// writeDomainError maps the sentinel errors to HTTP status and error codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_FORMAT")
	case errors.Is(err, errs.ErrUnknownFace):
		writeError(w, http.StatusBadRequest, err.Error(), "UNKNOWN_FACE")
	case errors.Is(err, errs.ErrInvalidWeight):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_WEIGHT")
	case errors.Is(err, errs.ErrDuplicateFace):
		writeError(w, http.StatusBadRequest, err.Error(), "DUPLICATE_FACE")
	case errors.Is(err, errs.ErrMismatchedFaces):
		writeError(w, http.StatusBadRequest, err.Error(), "MISMATCHED_FACES")
	case errors.Is(err, errs.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, errs.ErrDegenerateDistribution):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "DEGENERATE_DISTRIBUTION")
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), "INTERNAL")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"basecaller/internal/errs"
	"basecaller/pkg/types"
)

// StatusForError maps a classified error to an HTTP status code.
func StatusForError(err error) int {
	switch errs.KindOf(err) {
	case errs.KindConfig, errs.KindUnsupported:
		return http.StatusUnprocessableEntity
	case errs.KindDependency, errs.KindResource:
		return http.StatusServiceUnavailable
	case errs.KindIO:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"splitledger/internal/auth"
	"splitledger/internal/calculator"
	"splitledger/internal/service"
	"splitledger/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses. Unknown errors become
// opaque 500s so internal details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})

	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.Is(err, storage.ErrDuplicateEntry),
		errors.Is(err, storage.ErrCategoryInUse),
		errors.Is(err, auth.ErrAccountExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})

	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidPayer),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidSplitMember),
		errors.Is(err, service.ErrNotAGroupMember),
		errors.Is(err, service.ErrCreatorNotRemovable),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, calculator.ErrEmptyGroup),
		errors.Is(err, calculator.ErrSplitMismatch),
		errors.Is(err, calculator.ErrNegativeShare),
		errors.Is(err, calculator.ErrDuplicateSplitUser):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	default:
		slog.Error("Unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kpnaturals/storefront-service/internal/auth"
	"github.com/kpnaturals/storefront-service/internal/catalog"
	"github.com/kpnaturals/storefront-service/internal/obs"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// writeDomainError maps catalog and auth errors onto HTTP statuses. Anything
// unrecognized becomes a generic 500 with detail kept server-side.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case catalog.IsValidation(err):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "")
	case errors.Is(err, auth.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, "forbidden", "")
	case errors.Is(err, auth.ErrUserExists), errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidResetToken):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	default:
		obs.Logger.Error("internal_error",
			"error", err,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
		)
		WriteJSONError(w, http.StatusInternalServerError, "server_error", "")
	}
}

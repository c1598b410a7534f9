package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/helpers"
	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

// writeServiceError translates a hard service error into a transport status.
// Soft conditions never reach this path; they arrive as Result envelopes.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteError(w, http.StatusForbidden, "Forbidden. Only admin can access this.")
	case errors.Is(err, domain.ErrInvalidToken):
		helpers.WriteError(w, http.StatusBadRequest, "Invalid or expired token")
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidDates),
		errors.Is(err, domain.ErrStartDateInPast),
		errors.Is(err, domain.ErrEndBeforeStart):
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

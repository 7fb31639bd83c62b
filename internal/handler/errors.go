package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"docspace/internal/domain"
	"docspace/internal/httputil"
)

// handleError converts domain errors to problem responses. Unexpected errors
// are logged and reported as 500 without detail.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var rejection *domain.RejectionError
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &rejection):
		httputil.RespondProblem(w, httputil.NewProblem(rejection.StatusCode(), rejection.Message).
			With("reason", string(rejection.Reason)))
	case errors.As(err, &conflictErr):
		httputil.RespondProblem(w, httputil.NewProblem(http.StatusConflict, conflictErr.Error()).
			With("resource_type", conflictErr.ResourceType).
			With("resource_id", conflictErr.ResourceID))
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	"docspace/internal/httputil"
)

// PathParam reads a required path value, writing a 400 when it is missing
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}

// HandleCreateConflict answers a duplicate create with the existing resource
// and 409. Any other error goes through handleError.
func HandleCreateConflict[T any](w http.ResponseWriter, logger *slog.Logger, err error, fetchFn func(id string) (*T, error)) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) && conflictErr.ResourceID != "" {
		existing, fetchErr := fetchFn(conflictErr.ResourceID)
		if fetchErr != nil {
			handleError(w, logger, fetchErr)
			return
		}
		httputil.RespondJSON(w, http.StatusConflict, existing)
		return
	}

	handleError(w, logger, err)
}

// currentUser returns the caller resolved by the user middleware
func currentUser(r *http.Request) models.User {
	return models.User{
		ID:   httputil.GetUserID(r),
		Name: httputil.GetUserName(r),
	}
}

package middleware

import (
	"net/http"
	"strings"

	"docspace/internal/config"
	"docspace/internal/httputil"
)

// Header names carrying the caller's identity
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
)

// CurrentUser resolves the caller from the X-User-ID / X-User-Name headers,
// falling back to the configured default user. There is no authentication;
// the headers are trusted as sent.
func CurrentUser(defaultUserID, defaultUserName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
			userName := strings.TrimSpace(r.Header.Get(HeaderUserName))

			if userID == "" {
				userID = defaultUserID
				if userName == "" {
					userName = defaultUserName
				}
			}
			if len(userID) > config.MaxUserIDLength {
				httputil.RespondError(w, http.StatusBadRequest, HeaderUserID+" is too long")
				return
			}
			if userName == "" {
				userName = userID
			}

			next.ServeHTTP(w, httputil.WithUser(r, userID, userName))
		})
	}
}

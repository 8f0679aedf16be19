package server

import (
	"log/slog"
	"net/http"
	"time"
)

// handleAdminLogout always clears the cookie, even when the stored
// session could not be removed.
func handleAdminLogout(logger *slog.Logger, admin AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(adminCookieName); err == nil && cookie.Value != "" {
			if err := admin.DeleteAdminSession(r.Context(), cookie.Value); err != nil {
				logger.Warn("deleting admin session", "error", err)
			}
		}

		http.SetCookie(w, adminCookie("", -time.Second))

		w.WriteHeader(http.StatusNoContent)
	}
}

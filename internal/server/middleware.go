package server

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const (
	ctxKeyEntry ctxKey = iota
	ctxKeyAdmin
)

// sessionToken reads the Bearer token, falling back to ?token= for
// EventSource and WebSocket clients that cannot set headers.
func sessionToken(r *http.Request) string {
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	return r.URL.Query().Get("token")
}

func sessionMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			e, err := sessions.get(token)
			if err != nil {
				writeError(w, http.StatusNotFound, "session not found or expired")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyEntry, e)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminAuthMiddleware(admin AdminStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(adminCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			sess, err := admin.AdminFromSession(r.Context(), cookie.Value)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func entryFrom(r *http.Request) *playEntry {
	return r.Context().Value(ctxKeyEntry).(*playEntry)
}

func adminFrom(r *http.Request) adminSession {
	return r.Context().Value(ctxKeyAdmin).(adminSession)
}

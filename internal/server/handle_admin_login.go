package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	adminCookieName = "admin_session"
	adminCookieTTL  = 7 * 24 * time.Hour
)

var errBadCredentials = errors.New("invalid credentials")

// AdminLoginRequest is the body of POST /api/admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminMeResponse identifies the signed-in operator.
type AdminMeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s adminSession) response() AdminMeResponse {
	return AdminMeResponse{ID: s.AdminID, Email: s.Email}
}

// adminCookie carries the session id; a negative ttl expires it.
func adminCookie(sessionID string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     adminCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// authenticateAdmin checks the password against the stored bcrypt hash.
// Unknown emails and wrong passwords both yield errBadCredentials.
func authenticateAdmin(ctx context.Context, admin AdminStore, email, password string) (adminSession, error) {
	id, hash, err := admin.AdminByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		return adminSession{}, errBadCredentials
	case err != nil:
		return adminSession{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return adminSession{}, errBadCredentials
	}
	return adminSession{AdminID: id, Email: email}, nil
}

func handleAdminLogin(admin AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		email := strings.TrimSpace(strings.ToLower(req.Email))
		if email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		sess, err := authenticateAdmin(r.Context(), admin, email, req.Password)
		if errors.Is(err, errBadCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		id, err := admin.CreateAdminSession(r.Context(), sess.AdminID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		http.SetCookie(w, adminCookie(id, adminCookieTTL))
		writeJSON(w, http.StatusOK, sess.response())
	}
}

func handleAdminMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, adminFrom(r).response())
	}
}

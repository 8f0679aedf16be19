package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/spinwin/internal/catalog"
	"github.com/playperu/spinwin/internal/prizewheel"
	"github.com/playperu/spinwin/internal/registration"
)

// SessionResponse describes a play session. Token is only set when the
// session is opened.
type SessionResponse struct {
	Token    string               `json:"token,omitempty"`
	Game     GameResponse         `json:"game"`
	State    prizewheel.State     `json:"state"`
	Balloons []prizewheel.Balloon `json:"balloons,omitempty"`
	PoppedID *int                 `json:"poppedId,omitempty"`
	Headline string               `json:"headline,omitempty"`
	Message  string               `json:"message,omitempty"`
}

// sessionResponse snapshots e; the caller holds e.mu.
func sessionResponse(e *playEntry) SessionResponse {
	st := e.session.State()
	resp := SessionResponse{
		Game:     gameResponse(e.game),
		State:    st,
		Balloons: e.balloons,
		PoppedID: e.popped,
	}
	if st.Outcome != nil {
		resp.Headline = e.game.Headline(*st.Outcome)
		resp.Message = e.game.Message(*st.Outcome)
	}
	return resp
}

func handleOpenSession(games *catalog.Catalog, sessions *Sessions, src prizewheel.DrawSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := games.Get(chi.URLParam(r, "game"))
		if !ok {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}

		e, err := sessions.open(g, src)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		e.mu.Lock()
		resp := sessionResponse(e)
		e.mu.Unlock()
		resp.Token = e.id

		writeJSON(w, http.StatusCreated, resp)
	}
}

func handleSessionState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e := entryFrom(r)
		e.mu.Lock()
		resp := sessionResponse(e)
		e.mu.Unlock()
		writeJSON(w, http.StatusOK, resp)
	}
}

// IdentifierRequest is the request body for POST /api/session/identifier.
type IdentifierRequest struct {
	Email string `json:"email"`
}

func handleSubmitIdentifier(logger *slog.Logger, registrar *registration.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req IdentifierRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		e := entryFrom(r)
		e.mu.Lock()
		id, err := e.session.SubmitIdentifier(req.Email)
		resp := sessionResponse(e)
		e.mu.Unlock()

		switch {
		case errors.Is(err, prizewheel.ErrInvalidIdentifier):
			writeError(w, http.StatusUnprocessableEntity, "please enter a valid email address")
			return
		case errors.Is(err, prizewheel.ErrIllegalState):
			writeError(w, http.StatusConflict, "email already submitted")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("identifier captured", "session", e.id, "game", e.game.Slug)
		registrar.Dispatch(id)

		writeJSON(w, http.StatusOK, resp)
	}
}

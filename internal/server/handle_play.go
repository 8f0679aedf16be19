package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/spinwin/internal/prizewheel"
)

// PlayRequest is the request body for POST /api/session/play. BalloonID is
// required for balloon games and ignored for the wheel.
type PlayRequest struct {
	BalloonID *int `json:"balloonId"`
}

// PlayResponse acknowledges a started play. The outcome itself arrives with
// the "revealed" event once the animation is over.
type PlayResponse struct {
	State      prizewheel.State    `json:"state"`
	RevealInMs int64               `json:"revealInMs"`
	Landing    *prizewheel.Landing `json:"landing,omitempty"`
	BalloonID  *int                `json:"balloonId,omitempty"`
}

func handlePlay(logger *slog.Logger, broker *Broker, scheduler prizewheel.Scheduler, src prizewheel.DrawSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		e := entryFrom(r)
		e.mu.Lock()

		if e.game.Mechanic == prizewheel.MechanicBalloon && e.session.Status() == prizewheel.StatusReady {
			if req.BalloonID == nil || *req.BalloonID < 0 || *req.BalloonID >= len(e.balloons) {
				e.mu.Unlock()
				writeError(w, http.StatusBadRequest, "pick a balloon to pop")
				return
			}
		}

		prize, err := e.session.BeginPlay(src)
		if err != nil {
			e.mu.Unlock()
			switch {
			case errors.Is(err, prizewheel.ErrAlreadyPlayed):
				writeError(w, http.StatusConflict, "you already played")
			case errors.Is(err, prizewheel.ErrIllegalState):
				writeError(w, http.StatusConflict, "enter your email before playing")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		resp := PlayResponse{
			State:      e.session.State(),
			RevealInMs: e.game.RevealDelay.Milliseconds(),
		}
		if e.game.Mechanic == prizewheel.MechanicBalloon {
			popped := *req.BalloonID
			e.popped = &popped
			resp.BalloonID = &popped
		} else {
			landing, err := prizewheel.WheelLanding(e.game.Table, prize.ID)
			if err != nil {
				logger.Error("computing wheel landing", "session", e.id, "error", err)
			} else {
				resp.Landing = &landing
			}
		}
		e.mu.Unlock()

		logger.Info("play started", "session", e.id, "game", e.game.Slug)
		broker.Publish(e.id, SessionEvent{Type: eventState, State: resp.State})

		scheduler.AfterFunc(e.game.RevealDelay, func() {
			revealPlay(logger, broker, e, prize)
		})

		writeJSON(w, http.StatusAccepted, resp)
	}
}

// revealPlay completes the play once the animation delay has passed.
func revealPlay(logger *slog.Logger, broker *Broker, e *playEntry, prize prizewheel.Prize) {
	e.mu.Lock()
	err := e.session.ResolvePlay(prize)
	st := e.session.State()
	e.mu.Unlock()

	if err != nil {
		logger.Error("resolving play", "session", e.id, "error", err)
		return
	}

	logger.Info("play revealed", "session", e.id, "game", e.game.Slug, "prize", prize.ID, "try_again", prize.TryAgain)
	broker.Publish(e.id, SessionEvent{
		Type:     eventRevealed,
		State:    st,
		Headline: e.game.Headline(prize),
		Message:  e.game.Message(prize),
	})
}

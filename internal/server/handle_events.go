package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// handleEvents streams the session's events over SSE, starting with the
// current state so late subscribers never miss a reveal.
func handleEvents(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e := entryFrom(r)

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		ch := broker.Subscribe(e.id)
		defer broker.Unsubscribe(e.id, ch)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		initial, _ := json.Marshal(currentEvent(e))
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventState, initial)
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType(data), data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}

// currentEvent is a "state" event for e, with the message if already revealed.
func currentEvent(e *playEntry) SessionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.session.State()
	ev := SessionEvent{Type: eventState, State: st}
	if st.Outcome != nil {
		ev.Headline = e.game.Headline(*st.Outcome)
		ev.Message = e.game.Message(*st.Outcome)
	}
	return ev
}

func eventType(data []byte) string {
	var ev struct {
		Type string `json:"type"`
	}
	if json.Unmarshal(data, &ev) != nil || ev.Type == "" {
		return eventState
	}
	return ev.Type
}

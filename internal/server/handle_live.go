package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// handleLive mirrors the SSE stream over a WebSocket for kiosk displays.
// Anything the client sends is ignored; a read error ends the connection.
func handleLive(logger *slog.Logger, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e := entryFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ch := broker.Subscribe(e.id)
		defer broker.Unsubscribe(e.id, ch)

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
		defer cancel()
		ctx = conn.CloseRead(ctx)

		initial, _ := json.Marshal(currentEvent(e))
		if err := conn.Write(ctx, websocket.MessageText, initial); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusNormalClosure, "")
				return
			case data, ok := <-ch:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "server shutting down")
					return
				}
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

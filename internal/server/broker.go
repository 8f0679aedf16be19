package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/spinwin/internal/prizewheel"
)

// SessionEvent is the payload pushed to a session's SSE and WebSocket
// subscribers.
type SessionEvent struct {
	Type     string           `json:"type"`
	State    prizewheel.State `json:"state"`
	Headline string           `json:"headline,omitempty"`
	Message  string           `json:"message,omitempty"`
}

const (
	eventState    = "state"
	eventRevealed = "revealed"
)

// Broker is an in-process pub/sub for session events, keyed by session id.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[chan []byte]struct{}
	closed bool
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the
// session. The channel is closed when the broker shuts down; after Close it
// comes back already closed.
func (b *Broker) Subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 4)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan []byte]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(sessionID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the session. Slow
// subscribers miss events rather than block the reveal.
func (b *Broker) Publish(sessionID string, event SessionEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- data:
		default:
		}
	}
	b.mu.RUnlock()
}

// Close ends every open subscription so streaming handlers return. It is
// registered as an http.Server shutdown hook.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, chans := range b.subs {
		for ch := range chans {
			close(ch)
		}
	}
	b.subs = make(map[string]map[chan []byte]struct{})
}

package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/playperu/spinwin/internal/prizewheel"
)

var ErrNotFound = errors.New("not found")

// playEntry owns one visitor's Session. mu serializes every handler and the
// reveal callback touching it.
type playEntry struct {
	id   string
	game prizewheel.Game

	mu       sync.Mutex
	session  *prizewheel.Session
	balloons []prizewheel.Balloon
	popped   *int

	lastSeen atomic.Int64
}

func (e *playEntry) touch(now time.Time) { e.lastSeen.Store(now.UnixNano()) }

// Sessions is the in-memory registry of live play sessions. Nothing here is
// persisted: a restart forgets every session.
type Sessions struct {
	mu      sync.RWMutex
	entries map[string]*playEntry
	now     func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		entries: make(map[string]*playEntry),
		now:     time.Now,
	}
}

func (s *Sessions) open(game prizewheel.Game, src prizewheel.DrawSource) (*playEntry, error) {
	id, err := newToken()
	if err != nil {
		return nil, err
	}

	e := &playEntry{
		id:      id,
		game:    game,
		session: prizewheel.NewSession(game.Table),
	}
	if game.Mechanic == prizewheel.MechanicBalloon {
		e.balloons = prizewheel.NewBalloonBoard(game.Table, src, prizewheel.DefaultBalloonCount)
	}
	e.touch(s.now())

	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()
	return e, nil
}

func (s *Sessions) get(id string) (*playEntry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	e.touch(s.now())
	return e, nil
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops sessions idle for longer than ttl and reports how many went.
// A reveal still scheduled for a dropped session fires into the void.
func (s *Sessions) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.entries {
		if e.lastSeen.Load() < cutoff {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Run sweeps idle sessions until ctx is done.
func (s *Sessions) Run(ctx context.Context, logger *slog.Logger, ttl time.Duration) error {
	interval := ttl / 4
	if interval > 10*time.Minute {
		interval = 10 * time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(ttl); n > 0 {
				logger.Info("swept idle sessions", "count", n, "live", s.Len())
			}
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

package prizewheel

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

type Status string

const (
	StatusAwaitingIdentifier Status = "awaiting_identifier"
	StatusReady              Status = "ready"
	StatusInProgress         Status = "in_progress"
	StatusCompleted          Status = "completed"
)

// Identifier is a captured email address that passed ValidateIdentifier.
type Identifier string

// ValidateIdentifier is a UX gate, not a deliverability check: exactly one
// "@" with something on both sides and no whitespace.
func ValidateIdentifier(raw string) (Identifier, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidIdentifier)
	}
	if strings.Count(s, "@") != 1 || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q is not an email address", ErrInvalidIdentifier, s)
	}
	local, domain, _ := strings.Cut(s, "@")
	if local == "" || domain == "" {
		return "", fmt.Errorf("%w: %q is not an email address", ErrInvalidIdentifier, s)
	}
	return Identifier(s), nil
}

// Registrar is the identity registration collaborator. Sessions never wait
// on it and ignore its result.
type Registrar interface {
	Register(ctx context.Context, id Identifier) error
}

// State is a read-only snapshot for rendering.
type State struct {
	Status     Status     `json:"status"`
	Identifier Identifier `json:"identifier,omitempty"`
	Outcome    *Prize     `json:"outcome,omitempty"`
}

// Session is one visitor's single allowed play. It is not safe for
// concurrent use; the owner serializes access.
type Session struct {
	table      *Table
	status     Status
	identifier Identifier
	pending    *Prize
	outcome    *Prize
}

func NewSession(t *Table) *Session {
	return &Session{table: t, status: StatusAwaitingIdentifier}
}

func (s *Session) Table() *Table { return s.table }

// SubmitIdentifier moves AwaitingIdentifier → Ready.
func (s *Session) SubmitIdentifier(raw string) (Identifier, error) {
	if s.status != StatusAwaitingIdentifier {
		return "", fmt.Errorf("%w: identifier already submitted (status %s)", ErrIllegalState, s.status)
	}
	id, err := ValidateIdentifier(raw)
	if err != nil {
		return "", err
	}
	s.identifier = id
	s.status = StatusReady
	return id, nil
}

// BeginPlay moves Ready → InProgress. The draw happens here, once; the
// returned prize is only revealed by ResolvePlay.
func (s *Session) BeginPlay(src DrawSource) (Prize, error) {
	switch s.status {
	case StatusReady:
	case StatusInProgress, StatusCompleted:
		return Prize{}, ErrAlreadyPlayed
	default:
		return Prize{}, fmt.Errorf("%w: cannot play from status %s", ErrIllegalState, s.status)
	}
	if src == nil {
		return Prize{}, fmt.Errorf("%w: nil draw source", ErrIllegalState)
	}

	p := Draw(s.table, src)
	s.pending = &p
	s.status = StatusInProgress
	return p, nil
}

// ResolvePlay moves InProgress → Completed and records the outcome, which
// must be the prize drawn by BeginPlay.
func (s *Session) ResolvePlay(p Prize) error {
	if s.status != StatusInProgress {
		return fmt.Errorf("%w: cannot resolve from status %s", ErrIllegalState, s.status)
	}
	if s.pending == nil || s.pending.ID != p.ID {
		return fmt.Errorf("%w: prize %d was not drawn", ErrIllegalState, p.ID)
	}
	outcome := *s.pending
	s.outcome = &outcome
	s.pending = nil
	s.status = StatusCompleted
	return nil
}

// Pending returns the drawn but not yet revealed prize.
func (s *Session) Pending() (Prize, bool) {
	if s.pending == nil {
		return Prize{}, false
	}
	return *s.pending, true
}

func (s *Session) Status() Status { return s.status }

func (s *Session) State() State {
	st := State{Status: s.status, Identifier: s.identifier}
	if s.outcome != nil {
		o := *s.outcome
		st.Outcome = &o
	}
	return st
}

package prizewheel_test

import (
	"errors"
	"testing"

	"github.com/playperu/spinwin/internal/prizewheel"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: "a@b.com", want: "a@b.com", ok: true},
		{raw: "  maria@shop.pe \n", want: "maria@shop.pe", ok: true},
		{raw: "x@localhost", want: "x@localhost", ok: true},
		{raw: "", ok: false},
		{raw: "   ", ok: false},
		{raw: "not-an-email", ok: false},
		{raw: "@b.com", ok: false},
		{raw: "a@", ok: false},
		{raw: "a@@b.com", ok: false},
		{raw: "a@b@c", ok: false},
		{raw: "a b@c.com", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := prizewheel.ValidateIdentifier(tt.raw)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(got) != tt.want {
					t.Errorf("got %q, want %q", got, tt.want)
				}
				return
			}
			if !errors.Is(err, prizewheel.ErrInvalidIdentifier) {
				t.Errorf("err = %v, want ErrInvalidIdentifier", err)
			}
		})
	}
}

func TestSessionHappyPath(t *testing.T) {
	tbl := abTable(t)
	s := prizewheel.NewSession(tbl)

	if st := s.State(); st.Status != prizewheel.StatusAwaitingIdentifier {
		t.Fatalf("status = %s, want awaiting_identifier", st.Status)
	}

	if _, err := s.SubmitIdentifier("a@b.com"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if st := s.State(); st.Status != prizewheel.StatusReady || st.Identifier != "a@b.com" {
		t.Fatalf("state = %+v, want ready with identifier", st)
	}

	// 0.995 * 100 = 99.5 → B
	p, err := s.BeginPlay(prizewheel.Fixed(0.995))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if p.Label != "B" {
		t.Fatalf("drawn = %q, want B", p.Label)
	}

	st := s.State()
	if st.Status != prizewheel.StatusInProgress {
		t.Errorf("status = %s, want in_progress", st.Status)
	}
	if st.Outcome != nil {
		t.Errorf("outcome visible before reveal: %+v", st.Outcome)
	}
	if pending, ok := s.Pending(); !ok || pending.ID != p.ID {
		t.Errorf("pending = %+v, %v", pending, ok)
	}

	if err := s.ResolvePlay(p); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	st = s.State()
	if st.Status != prizewheel.StatusCompleted {
		t.Errorf("status = %s, want completed", st.Status)
	}
	if st.Outcome == nil || st.Outcome.Label != "B" {
		t.Errorf("outcome = %+v, want B", st.Outcome)
	}
	if _, ok := s.Pending(); ok {
		t.Errorf("pending still set after reveal")
	}
}

func TestSessionInvalidIdentifierKeepsState(t *testing.T) {
	s := prizewheel.NewSession(abTable(t))

	_, err := s.SubmitIdentifier("not-an-email")
	if !errors.Is(err, prizewheel.ErrInvalidIdentifier) {
		t.Fatalf("err = %v, want ErrInvalidIdentifier", err)
	}
	if st := s.State(); st.Status != prizewheel.StatusAwaitingIdentifier || st.Identifier != "" {
		t.Errorf("state = %+v, want untouched", st)
	}
}

func TestSessionIllegalTransitions(t *testing.T) {
	tbl := abTable(t)

	awaiting := func() *prizewheel.Session { return prizewheel.NewSession(tbl) }
	ready := func() *prizewheel.Session {
		s := awaiting()
		s.SubmitIdentifier("a@b.com")
		return s
	}
	inProgress := func() *prizewheel.Session {
		s := ready()
		s.BeginPlay(prizewheel.Fixed(0))
		return s
	}
	completed := func() *prizewheel.Session {
		s := inProgress()
		p, _ := s.Pending()
		s.ResolvePlay(p)
		return s
	}
	a := prizewheel.Prize{ID: 1, Label: "A", Weight: 1}

	tests := []struct {
		name  string
		setup func() *prizewheel.Session
		op    func(*prizewheel.Session) error
		want  error
	}{
		{"play before identifier", awaiting, func(s *prizewheel.Session) error { _, err := s.BeginPlay(prizewheel.Fixed(0)); return err }, prizewheel.ErrIllegalState},
		{"resolve before identifier", awaiting, func(s *prizewheel.Session) error { return s.ResolvePlay(a) }, prizewheel.ErrIllegalState},
		{"resolve when ready", ready, func(s *prizewheel.Session) error { return s.ResolvePlay(a) }, prizewheel.ErrIllegalState},
		{"identifier twice", ready, func(s *prizewheel.Session) error { _, err := s.SubmitIdentifier("c@d.com"); return err }, prizewheel.ErrIllegalState},
		{"nil source", ready, func(s *prizewheel.Session) error { _, err := s.BeginPlay(nil); return err }, prizewheel.ErrIllegalState},
		{"play while in progress", inProgress, func(s *prizewheel.Session) error { _, err := s.BeginPlay(prizewheel.Fixed(0.9)); return err }, prizewheel.ErrAlreadyPlayed},
		{"resolve with other prize", inProgress, func(s *prizewheel.Session) error {
			return s.ResolvePlay(prizewheel.Prize{ID: 2, Label: "B", Weight: 99})
		}, prizewheel.ErrIllegalState},
		{"identifier after completion", completed, func(s *prizewheel.Session) error { _, err := s.SubmitIdentifier("c@d.com"); return err }, prizewheel.ErrIllegalState},
		{"resolve twice", completed, func(s *prizewheel.Session) error { return s.ResolvePlay(a) }, prizewheel.ErrIllegalState},
		{"play again", completed, func(s *prizewheel.Session) error { _, err := s.BeginPlay(prizewheel.Fixed(0.9)); return err }, prizewheel.ErrAlreadyPlayed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.setup()
			before := s.State()
			pendingBefore, hadPending := s.Pending()

			err := tt.op(s)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}

			after := s.State()
			if after.Status != before.Status || after.Identifier != before.Identifier {
				t.Errorf("state changed: %+v → %+v", before, after)
			}
			if (before.Outcome == nil) != (after.Outcome == nil) ||
				(before.Outcome != nil && *before.Outcome != *after.Outcome) {
				t.Errorf("outcome changed: %+v → %+v", before.Outcome, after.Outcome)
			}
			pendingAfter, hasPending := s.Pending()
			if hadPending != hasPending || pendingBefore != pendingAfter {
				t.Errorf("pending changed: %+v → %+v", pendingBefore, pendingAfter)
			}
		})
	}
}

func TestBeginPlayTwiceKeepsFirstOutcome(t *testing.T) {
	s := prizewheel.NewSession(abTable(t))
	s.SubmitIdentifier("a@b.com")

	first, err := s.BeginPlay(prizewheel.Fixed(0.001))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.ResolvePlay(first); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	calls := 0
	counting := prizewheel.SourceFunc(func() float64 { calls++; return 0.9 })
	if _, err := s.BeginPlay(counting); !errors.Is(err, prizewheel.ErrAlreadyPlayed) {
		t.Fatalf("err = %v, want ErrAlreadyPlayed", err)
	}
	if calls != 0 {
		t.Errorf("source consulted %d times after completion", calls)
	}
	if got := s.State().Outcome; got == nil || got.Label != "A" {
		t.Errorf("outcome = %+v, want A", got)
	}
}

package prizewheel

import (
	"fmt"
	"time"
)

type Mechanic string

const (
	MechanicWheel   Mechanic = "wheel"
	MechanicBalloon Mechanic = "balloon"
)

const (
	DefaultWheelReveal   = 3 * time.Second
	DefaultBalloonReveal = 500 * time.Millisecond
	DefaultBalloonCount  = 12
)

// Game binds a play mechanic to its prize table.
type Game struct {
	Slug        string
	Name        string
	Mechanic    Mechanic
	Table       *Table
	RevealDelay time.Duration
}

func (m Mechanic) Valid() bool {
	return m == MechanicWheel || m == MechanicBalloon
}

// DefaultRevealDelay is the animation length of the mechanic.
func (m Mechanic) DefaultRevealDelay() time.Duration {
	if m == MechanicBalloon {
		return DefaultBalloonReveal
	}
	return DefaultWheelReveal
}

// Message is the text shown with a revealed prize. Consolation wording
// follows the game's mechanic; winners get the same claim instructions
// everywhere.
func (g Game) Message(p Prize) string {
	if !p.TryAgain {
		return "Show this screen to a staff member to claim your prize!"
	}
	if g.Mechanic == MechanicBalloon {
		return "Better luck next time! Try popping another balloon."
	}
	return "Better luck next time! Try spinning again."
}

// Headline is the short announcement shown when the prize is revealed.
func (g Game) Headline(p Prize) string {
	if g.Mechanic == MechanicBalloon {
		return "You found: " + p.Label + "!"
	}
	return "You won: " + p.Label + "!"
}

// Landing describes where the wheel must stop so the pointer sits in the
// middle of the winning segment.
type Landing struct {
	Segment      int     `json:"segment"`
	SegmentAngle float64 `json:"segmentAngle"`
	TargetAngle  float64 `json:"targetAngle"`
	SpinDegrees  float64 `json:"spinDegrees"`
}

const fullTurns = 4

func WheelLanding(t *Table, prizeID int) (Landing, error) {
	idx := t.IndexOf(prizeID)
	if idx < 0 {
		return Landing{}, fmt.Errorf("prize %d not in table", prizeID)
	}
	seg := 360 / float64(t.Len())
	target := float64(idx)*seg + seg/2
	return Landing{
		Segment:      idx,
		SegmentAngle: seg,
		TargetAngle:  target,
		SpinDegrees:  fullTurns*360 + (360 - target),
	}, nil
}

// Balloon is one decorated balloon on the board. Its color is cosmetic:
// which balloon is popped has no bearing on the draw.
type Balloon struct {
	ID    int     `json:"id"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

const balloonColumns = 4

// NewBalloonBoard lays out n balloons on a grid (positions in percent),
// coloring them from a shuffle of the table's prizes.
func NewBalloonBoard(t *Table, src DrawSource, n int) []Balloon {
	if n <= 0 {
		n = DefaultBalloonCount
	}
	shuffled := t.Prizes()
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	board := make([]Balloon, n)
	for i := range board {
		board[i] = Balloon{
			ID:    i,
			Color: shuffled[i%len(shuffled)].Color,
			X:     10 + float64(i%balloonColumns)*22.5,
			Y:     10 + float64(i/balloonColumns)*25,
		}
	}
	return board
}

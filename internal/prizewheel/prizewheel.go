// Package prizewheel defines the core domain: prize tables, weighted
// selection, and the single-play session state machine.
package prizewheel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidConfiguration = errors.New("invalid prize configuration")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrIllegalState         = errors.New("illegal session state")
	ErrAlreadyPlayed        = errors.New("already played")
)

type Prize struct {
	ID       int     `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Color    string  `json:"color,omitempty" yaml:"color"`
	Icon     string  `json:"icon,omitempty" yaml:"icon"`
	TryAgain bool    `json:"tryAgain,omitempty" yaml:"try_again"`
}

// Table is an ordered, validated prize list. Order decides how cumulative
// weights are assigned, so it is never changed after construction.
type Table struct {
	prizes []Prize
	total  float64
}

// NewTable validates entries and returns an immutable table.
// All problems are reported in a single ErrInvalidConfiguration.
func NewTable(entries []Prize) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one prize is required", ErrInvalidConfiguration)
	}

	var errs []string
	seen := make(map[int]bool, len(entries))
	var total float64
	for i, p := range entries {
		if math.IsNaN(p.Weight) || math.IsInf(p.Weight, 0) || p.Weight <= 0 {
			errs = append(errs, fmt.Sprintf("prizes[%d].weight must be > 0", i))
		} else {
			total += p.Weight
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Sprintf("prizes[%d].id %d is duplicated", i, p.ID))
		}
		seen[p.ID] = true
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(errs, "; "))
	}

	return &Table{
		prizes: append([]Prize(nil), entries...),
		total:  total,
	}, nil
}

// Prizes returns a copy of the prizes in table order.
func (t *Table) Prizes() []Prize {
	return append([]Prize(nil), t.prizes...)
}

func (t *Table) Len() int { return len(t.prizes) }

func (t *Table) TotalWeight() float64 { return t.total }

// IndexOf returns the position of the prize with the given id, or -1.
func (t *Table) IndexOf(id int) int {
	for i, p := range t.prizes {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Odds is a prize paired with its selection probability.
type Odds struct {
	Prize       Prize   `json:"prize"`
	Probability float64 `json:"probability"`
}

func (t *Table) Odds() []Odds {
	out := make([]Odds, len(t.prizes))
	for i, p := range t.prizes {
		out[i] = Odds{Prize: p, Probability: p.Weight / t.total}
	}
	return out
}

// Select maps draw, a value in [0, TotalWeight), to the first prize whose
// inclusive cumulative weight exceeds it. A draw at or past the total
// (rounding, NaN) falls back to the last prize.
func Select(t *Table, draw float64) Prize {
	var cumulative float64
	for _, p := range t.prizes {
		cumulative += p.Weight
		if draw < cumulative {
			return p
		}
	}
	return t.prizes[len(t.prizes)-1]
}

// Draw scales one sample from src to the table's total weight and selects.
func Draw(t *Table, src DrawSource) Prize {
	return Select(t, src.Float64()*t.total)
}

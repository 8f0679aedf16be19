// Package catalog loads game definitions (mechanic + prize table) from YAML
// and ships the built-in wheel and balloon games.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/playperu/spinwin/internal/prizewheel"
)

type fileConfig struct {
	Games []gameConfig `yaml:"games"`
}

type gameConfig struct {
	Slug        string             `yaml:"slug"`
	Name        string             `yaml:"name"`
	Mechanic    string             `yaml:"mechanic"`
	RevealDelay time.Duration      `yaml:"reveal_delay"`
	Prizes      []prizewheel.Prize `yaml:"prizes"`
}

// Catalog is an immutable set of games keyed by slug.
type Catalog struct {
	games map[string]prizewheel.Game
}

func New(games ...prizewheel.Game) (*Catalog, error) {
	c := &Catalog{games: make(map[string]prizewheel.Game, len(games))}
	for _, g := range games {
		if g.Slug == "" {
			return nil, fmt.Errorf("%w: game slug is required", prizewheel.ErrInvalidConfiguration)
		}
		if _, dup := c.games[g.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate game %q", prizewheel.ErrInvalidConfiguration, g.Slug)
		}
		c.games[g.Slug] = g
	}
	return c, nil
}

func (c *Catalog) Get(slug string) (prizewheel.Game, bool) {
	g, ok := c.games[slug]
	return g, ok
}

// List returns games sorted by slug.
func (c *Catalog) List() []prizewheel.Game {
	out := make([]prizewheel.Game, 0, len(c.games))
	for _, g := range c.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Load reads games from a YAML file. An empty path yields the defaults.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading games file: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a games document.
func Parse(b []byte) (*Catalog, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", prizewheel.ErrInvalidConfiguration, err)
	}
	if len(fc.Games) == 0 {
		return nil, fmt.Errorf("%w: no games defined", prizewheel.ErrInvalidConfiguration)
	}

	var errs []error
	games := make([]prizewheel.Game, 0, len(fc.Games))
	for i, gc := range fc.Games {
		g, err := gc.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("games[%d]: %w", i, err))
			continue
		}
		games = append(games, g)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return New(games...)
}

func (gc gameConfig) build() (prizewheel.Game, error) {
	slug := strings.TrimSpace(gc.Slug)
	if slug == "" {
		return prizewheel.Game{}, fmt.Errorf("%w: slug is required", prizewheel.ErrInvalidConfiguration)
	}
	mech := prizewheel.Mechanic(gc.Mechanic)
	if mech == "" {
		mech = prizewheel.MechanicWheel
	}
	if !mech.Valid() {
		return prizewheel.Game{}, fmt.Errorf("%w: mechanic must be wheel or balloon, got %q", prizewheel.ErrInvalidConfiguration, gc.Mechanic)
	}
	if gc.RevealDelay < 0 {
		return prizewheel.Game{}, fmt.Errorf("%w: reveal_delay must be >= 0", prizewheel.ErrInvalidConfiguration)
	}

	tbl, err := prizewheel.NewTable(gc.Prizes)
	if err != nil {
		return prizewheel.Game{}, err
	}

	delay := gc.RevealDelay
	if delay == 0 {
		delay = mech.DefaultRevealDelay()
	}
	name := gc.Name
	if name == "" {
		name = slug
	}
	return prizewheel.Game{
		Slug:        slug,
		Name:        name,
		Mechanic:    mech,
		Table:       tbl,
		RevealDelay: delay,
	}, nil
}

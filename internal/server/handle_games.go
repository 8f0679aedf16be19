package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/spinwin/internal/catalog"
	"github.com/playperu/spinwin/internal/prizewheel"
)

// SegmentInfo is a prize as the widget renders it. Weights stay server-side.
type SegmentInfo struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Icon     string `json:"icon,omitempty"`
	TryAgain bool   `json:"tryAgain"`
}

// GameResponse is the public description of a game.
type GameResponse struct {
	Slug          string        `json:"slug"`
	Name          string        `json:"name"`
	Mechanic      string        `json:"mechanic"`
	RevealDelayMs int64         `json:"revealDelayMs"`
	Segments      []SegmentInfo `json:"segments"`
}

func gameResponse(g prizewheel.Game) GameResponse {
	prizes := g.Table.Prizes()
	segs := make([]SegmentInfo, len(prizes))
	for i, p := range prizes {
		segs[i] = SegmentInfo{ID: p.ID, Label: p.Label, Color: p.Color, Icon: p.Icon, TryAgain: p.TryAgain}
	}
	return GameResponse{
		Slug:          g.Slug,
		Name:          g.Name,
		Mechanic:      string(g.Mechanic),
		RevealDelayMs: g.RevealDelay.Milliseconds(),
		Segments:      segs,
	}
}

func handleListGames(games *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := games.List()
		resp := make([]GameResponse, len(list))
		for i, g := range list {
			resp[i] = gameResponse(g)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleGetGame(games *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := games.Get(chi.URLParam(r, "game"))
		if !ok {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeJSON(w, http.StatusOK, gameResponse(g))
	}
}

// PrizeOdds is one row of the operator's odds view.
type PrizeOdds struct {
	ID          int     `json:"id"`
	Label       string  `json:"label"`
	Weight      float64 `json:"weight"`
	Probability float64 `json:"probability"`
	TryAgain    bool    `json:"tryAgain"`
}

// AdminGameResponse is a game with its weights and normalized odds.
type AdminGameResponse struct {
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	Mechanic    string      `json:"mechanic"`
	TotalWeight float64     `json:"totalWeight"`
	Odds        []PrizeOdds `json:"odds"`
}

func handleAdminGames(games *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := games.List()
		resp := make([]AdminGameResponse, len(list))
		for i, g := range list {
			odds := g.Table.Odds()
			rows := make([]PrizeOdds, len(odds))
			for j, o := range odds {
				rows[j] = PrizeOdds{
					ID:          o.Prize.ID,
					Label:       o.Prize.Label,
					Weight:      o.Prize.Weight,
					Probability: o.Probability,
					TryAgain:    o.Prize.TryAgain,
				}
			}
			resp[i] = AdminGameResponse{
				Slug:        g.Slug,
				Name:        g.Name,
				Mechanic:    string(g.Mechanic),
				TotalWeight: g.Table.TotalWeight(),
				Odds:        rows,
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

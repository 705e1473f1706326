// Package round persists the most recent play. Only one record is ever kept:
// each save overwrites the previous one.
package round

import (
	"cmp"
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ashenafi-pixel/montecarlo-dice/analyzer"
	"github.com/Ashenafi-pixel/montecarlo-dice/die"
	"github.com/Ashenafi-pixel/montecarlo-dice/game"
)

// Record snapshots one played game: its dice, its wide outcome table and the
// statistics computed over it.
type Record[F cmp.Ordered] struct {
	PlayID   string               `json:"playId"`
	PlayedAt time.Time            `json:"playedAt"`
	Rolls    int                  `json:"rolls"`
	Dice     []die.State[F]       `json:"dice"`
	Table    *game.Frame[F]       `json:"table"`
	Summary  *analyzer.Summary[F] `json:"summary,omitempty"`
}

// NewRecord snapshots g. a may be nil to skip the summary.
func NewRecord[F cmp.Ordered](g *game.Game[F], a *analyzer.Analyzer[F]) *Record[F] {
	table, _ := g.RecentPlay(game.Wide)
	dice := g.Dice()
	states := make([]die.State[F], len(dice))
	for i, d := range dice {
		states[i] = d.CurrentState()
	}
	r := &Record[F]{
		PlayID:   uuid.NewString(),
		PlayedAt: time.Now().UTC(),
		Rolls:    table.Len(),
		Dice:     states,
		Table:    table,
	}
	if a != nil {
		s := a.Summary()
		r.Summary = &s
	}
	return r
}

// Store keeps the latest record.
type Store[F cmp.Ordered] interface {
	// Save replaces the stored record.
	Save(ctx context.Context, r *Record[F]) error
	// Latest returns the stored record, or nil, nil when nothing was saved.
	Latest(ctx context.Context) (*Record[F], error)
}

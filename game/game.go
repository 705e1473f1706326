// Package game rolls a fixed set of dice together and keeps the outcome
// table of the most recent play.
package game

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Ashenafi-pixel/montecarlo-dice/die"
	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
)

// Form selects a projection of the outcome table.
type Form string

const (
	// Wide has one row per roll and one column per die.
	Wide Form = "wide"
	// Narrow has one row per (roll, die) pair and a single face column.
	Narrow Form = "narrow"
)

// ParseForm converts user input to a Form.
func ParseForm(s string) (Form, error) {
	switch f := Form(strings.ToLower(strings.TrimSpace(s))); f {
	case Wide, Narrow:
		return f, nil
	}
	return "", fmt.Errorf("form %q: %w", s, errs.ErrInvalidFormat)
}

// Game owns an ordered set of dice and the table of its latest play. Dice are
// held by reference: a weight changed on a die affects later plays. A Game
// must not be played from two goroutines at once.
type Game[F cmp.Ordered] struct {
	dice  []*die.Die[F]
	faces []F
	last  *Frame[F]
}

// New creates a game over dice. Every die must carry the same face set.
func New[F cmp.Ordered](dice []*die.Die[F]) (*Game[F], error) {
	if len(dice) == 0 {
		return nil, fmt.Errorf("game needs at least one die: %w", errs.ErrInvalidInput)
	}
	for i, d := range dice {
		if d == nil {
			return nil, fmt.Errorf("die %d is nil: %w", i, errs.ErrInvalidInput)
		}
	}
	faces := dice[0].Faces()
	slices.Sort(faces)
	for i, d := range dice[1:] {
		other := d.Faces()
		slices.Sort(other)
		if !slices.Equal(faces, other) {
			return nil, fmt.Errorf("die %d faces %v differ from die 0 faces %v: %w", i+1, other, faces, errs.ErrMismatchedFaces)
		}
	}
	return &Game[F]{
		dice:  slices.Clone(dice),
		faces: faces,
		last:  newWide[F](len(dice), 0),
	}, nil
}

// Play rolls every die rolls times and replaces the outcome table. On error
// the previous table is kept.
func (g *Game[F]) Play(rolls int) error {
	if rolls < 1 {
		return fmt.Errorf("roll count %d: %w", rolls, errs.ErrInvalidInput)
	}
	columns := make([][]F, len(g.dice))
	for j, d := range g.dice {
		col, err := d.Roll(rolls)
		if err != nil {
			return fmt.Errorf("die %d: %w", j, err)
		}
		columns[j] = col
	}
	t := newWide[F](len(g.dice), rolls)
	for i := 0; i < rolls; i++ {
		row := make([]F, len(columns))
		for j := range columns {
			row[j] = columns[j][i]
		}
		t.Index = append(t.Index, []int{i + 1})
		t.Values = append(t.Values, row)
	}
	g.last = t
	return nil
}

// RecentPlay returns a copy of the latest outcome table in the requested
// form. Before the first play the table is empty.
func (g *Game[F]) RecentPlay(form Form) (*Frame[F], error) {
	switch form {
	case Wide:
		return g.last.Clone(), nil
	case Narrow:
		return g.last.Narrow(), nil
	}
	return nil, fmt.Errorf("form %q: %w", form, errs.ErrInvalidFormat)
}

// Dice returns the game's dice in input order.
func (g *Game[F]) Dice() []*die.Die[F] { return slices.Clone(g.dice) }

// Faces returns the sorted face set shared by every die.
func (g *Game[F]) Faces() []F { return slices.Clone(g.faces) }

// Rolls returns the number of rows in the latest table.
func (g *Game[F]) Rolls() int { return g.last.Len() }

// Played reports whether Play has succeeded at least once.
func (g *Game[F]) Played() bool { return g.last.Len() > 0 }

// Package analyzer computes descriptive statistics over a game's most
// recent outcome table.
package analyzer

import (
	"cmp"
	"fmt"
	"slices"
	"sort"

	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
	"github.com/Ashenafi-pixel/montecarlo-dice/game"
)

// Analyzer reads a game without owning or mutating it. Every statistic is
// recomputed from the game's current table.
type Analyzer[F cmp.Ordered] struct {
	game *game.Game[F]
}

// Frequency is the number of rolls that produced Key.
type Frequency[F cmp.Ordered] struct {
	Key   []F `json:"key"`
	Count int `json:"count"`
}

// Jackpot is a roll where every die showed Face.
type Jackpot[F cmp.Ordered] struct {
	Roll int `json:"roll"`
	Face F   `json:"face"`
}

// FaceCounts holds, per roll, how often each known face appeared.
// Counts[i][j] is the count of Faces[j] in roll Rolls[i].
type FaceCounts[F cmp.Ordered] struct {
	Faces  []F     `json:"faces"`
	Rolls  []int   `json:"rolls"`
	Counts [][]int `json:"counts"`
}

// New creates an analyzer over g. g need not have been played.
func New[F cmp.Ordered](g *game.Game[F]) (*Analyzer[F], error) {
	if g == nil {
		return nil, fmt.Errorf("analyzer needs a game: %w", errs.ErrInvalidInput)
	}
	return &Analyzer[F]{game: g}, nil
}

func (a *Analyzer[F]) wide() *game.Frame[F] {
	// Wide is always a valid form.
	t, _ := a.game.RecentPlay(game.Wide)
	return t
}

// JackpotCount returns the number of rolls where every die showed the same face.
func (a *Analyzer[F]) JackpotCount() int {
	return len(a.Jackpots())
}

// Jackpots lists every jackpot roll in roll order.
func (a *Analyzer[F]) Jackpots() []Jackpot[F] {
	t := a.wide()
	out := []Jackpot[F]{}
	for i, row := range t.Values {
		if len(row) == 0 {
			continue
		}
		same := true
		for _, v := range row[1:] {
			if v != row[0] {
				same = false
				break
			}
		}
		if same {
			out = append(out, Jackpot[F]{Roll: t.Index[i][0], Face: row[0]})
		}
	}
	return out
}

// FaceCountsPerRoll counts each known face in every roll. Faces that did not
// appear in a roll count 0.
func (a *Analyzer[F]) FaceCountsPerRoll() FaceCounts[F] {
	t := a.wide()
	faces := a.game.Faces()
	col := make(map[F]int, len(faces))
	for j, f := range faces {
		col[f] = j
	}
	fc := FaceCounts[F]{
		Faces:  faces,
		Rolls:  make([]int, t.Len()),
		Counts: make([][]int, t.Len()),
	}
	for i, row := range t.Values {
		fc.Rolls[i] = t.Index[i][0]
		counts := make([]int, len(faces))
		for _, v := range row {
			counts[col[v]]++
		}
		fc.Counts[i] = counts
	}
	return fc
}

// CombinationCount groups rolls by their faces regardless of which die
// produced which face.
func (a *Analyzer[F]) CombinationCount() []Frequency[F] {
	return count(a.wide(), true)
}

// PermutationCount groups rolls by their faces in die order.
func (a *Analyzer[F]) PermutationCount() []Frequency[F] {
	return count(a.wide(), false)
}

// canonicalize returns the grouping key of a row: a sorted copy for
// combinations, a plain copy for permutations.
func canonicalize[F cmp.Ordered](row []F, unordered bool) []F {
	key := slices.Clone(row)
	if unordered {
		slices.Sort(key)
	}
	return key
}

// count groups rows by key. Result is ordered by descending count, ties by
// ascending key.
func count[F cmp.Ordered](t *game.Frame[F], unordered bool) []Frequency[F] {
	keys := make([][]F, t.Len())
	for i, row := range t.Values {
		keys[i] = canonicalize(row, unordered)
	}
	slices.SortFunc(keys, func(x, y []F) int { return slices.Compare(x, y) })

	out := []Frequency[F]{}
	for i := 0; i < len(keys); {
		j := i + 1
		for j < len(keys) && slices.Equal(keys[i], keys[j]) {
			j++
		}
		out = append(out, Frequency[F]{Key: keys[i], Count: j - i})
		i = j
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

package analyzer

import "cmp"

// Summary bundles every statistic of one play for presentation and storage.
type Summary[F cmp.Ordered] struct {
	Rolls        int            `json:"rolls"`
	Dice         int            `json:"dice"`
	JackpotCount int            `json:"jackpotCount"`
	Jackpots     []Jackpot[F]   `json:"jackpots"`
	FaceCounts   FaceCounts[F]  `json:"faceCounts"`
	Combinations []Frequency[F] `json:"combinations"`
	Permutations []Frequency[F] `json:"permutations"`
}

// Summary computes all statistics of the current table.
func (a *Analyzer[F]) Summary() Summary[F] {
	jackpots := a.Jackpots()
	return Summary[F]{
		Rolls:        a.game.Rolls(),
		Dice:         len(a.game.Dice()),
		JackpotCount: len(jackpots),
		Jackpots:     jackpots,
		FaceCounts:   a.FaceCountsPerRoll(),
		Combinations: a.CombinationCount(),
		Permutations: a.PermutationCount(),
	}
}

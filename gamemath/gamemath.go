package gamemath

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	mrand "math/rand/v2"
	"sort"

	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
)

// Source yields uniform draws in [0, 1). *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic PCG source for reproducible plays.
func NewSeededSource(seed uint64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// CryptoSource draws from crypto/rand (CSPRNG). It is the default source for
// dice created without one.
type CryptoSource struct{}

// Float64 returns a uniform value in [0, 1) built from 53 random bits.
func (CryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("gamemath: crypto/rand: " + err.Error())
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// Total validates weights and returns their sum.
func Total(weights []float64) (float64, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("empty weight table: %w", errs.ErrInvalidInput)
	}
	var total float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return 0, fmt.Errorf("weight %d is %v: %w", i, w, errs.ErrInvalidWeight)
		}
		total += w
	}
	if total <= 0 {
		return 0, errs.ErrDegenerateDistribution
	}
	return total, nil
}

// Probabilities normalizes weights so they sum to 1.
func Probabilities(weights []float64) ([]float64, error) {
	total, err := Total(weights)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / total
	}
	return out, nil
}

// Choose draws n indices with replacement, each with probability
// weights[i] / sum(weights). Zero-weight indices are never returned.
func Choose(src Source, weights []float64, n int) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("draw count %d: %w", n, errs.ErrInvalidInput)
	}
	if src == nil {
		src = CryptoSource{}
	}
	total, err := Total(weights)
	if err != nil {
		return nil, err
	}
	cum := make([]float64, len(weights))
	var acc float64
	last := -1
	for i, w := range weights {
		acc += w
		cum[i] = acc
		if w > 0 {
			last = i
		}
	}
	out := make([]int, n)
	for k := range out {
		target := src.Float64() * total
		idx := sort.Search(len(cum), func(i int) bool { return cum[i] > target })
		if idx >= len(cum) {
			// rounding pushed target to the top of the range
			idx = last
		}
		out[k] = idx
	}
	return out, nil
}

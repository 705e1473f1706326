// Package die implements a weighted, discrete-outcome die.
package die

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
	"github.com/Ashenafi-pixel/montecarlo-dice/gamemath"
)

// DefaultWeight is the weight every face starts with.
const DefaultWeight = 1.0

// Die holds a fixed, ordered set of distinct faces and a mutable weight per
// face. A Die is not safe for concurrent use: a weight must not change while
// a roll is in flight.
type Die[F cmp.Ordered] struct {
	faces   []F
	index   map[F]int
	weights []float64
	src     gamemath.Source
}

// Option configures a Die at construction.
type Option func(*options)

type options struct {
	src gamemath.Source
}

// WithSource sets the random source used by Roll. Dice sharing one seeded
// source produce a reproducible play.
func WithSource(src gamemath.Source) Option {
	return func(o *options) { o.src = src }
}

// New creates a die over faces with every weight set to DefaultWeight.
func New[F cmp.Ordered](faces []F, opts ...Option) (*Die[F], error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("die needs at least one face: %w", errs.ErrInvalidInput)
	}
	o := options{src: gamemath.CryptoSource{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		return nil, fmt.Errorf("nil random source: %w", errs.ErrInvalidInput)
	}
	d := &Die[F]{
		faces:   make([]F, len(faces)),
		index:   make(map[F]int, len(faces)),
		weights: make([]float64, len(faces)),
		src:     o.src,
	}
	for i, f := range faces {
		// NaN never equals itself, so it can be neither looked up nor deduplicated.
		if f != f {
			return nil, fmt.Errorf("face %d is NaN: %w", i, errs.ErrInvalidInput)
		}
		if _, dup := d.index[f]; dup {
			return nil, fmt.Errorf("face %v: %w", f, errs.ErrDuplicateFace)
		}
		d.index[f] = i
		d.faces[i] = f
		d.weights[i] = DefaultWeight
	}
	return d, nil
}

// ChangeWeight overwrites the weight of an existing face. Negative, NaN and
// infinite weights are rejected.
func (d *Die[F]) ChangeWeight(face F, weight float64) error {
	i, ok := d.index[face]
	if !ok {
		return fmt.Errorf("face %v: %w", face, errs.ErrUnknownFace)
	}
	if err := checkWeight(weight); err != nil {
		return err
	}
	d.weights[i] = weight
	return nil
}

func checkWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("weight %v is not a finite number: %w", w, errs.ErrInvalidWeight)
	}
	if w < 0 {
		return fmt.Errorf("weight %v is negative: %w", w, errs.ErrInvalidWeight)
	}
	return nil
}

// ParseWeight converts textual input to a weight.
func ParseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("weight %q is not numeric: %w", s, errs.ErrInvalidWeight)
	}
	if err := checkWeight(w); err != nil {
		return 0, err
	}
	return w, nil
}

// Roll draws times faces independently, with replacement, each with
// probability weight/sum(weights). Rolling does not change the die.
func (d *Die[F]) Roll(times int) ([]F, error) {
	if times < 1 {
		return nil, fmt.Errorf("roll count %d: %w", times, errs.ErrInvalidInput)
	}
	idx, err := gamemath.Choose(d.src, d.weights, times)
	if err != nil {
		return nil, fmt.Errorf("roll: %w", err)
	}
	out := make([]F, len(idx))
	for k, i := range idx {
		out[k] = d.faces[i]
	}
	return out, nil
}

// Faces returns a copy of the faces in construction order.
func (d *Die[F]) Faces() []F {
	out := make([]F, len(d.faces))
	copy(out, d.faces)
	return out
}

// Len returns the number of faces.
func (d *Die[F]) Len() int { return len(d.faces) }

// HasFace reports whether face belongs to the die.
func (d *Die[F]) HasFace(face F) bool {
	_, ok := d.index[face]
	return ok
}

// CurrentState returns a snapshot of every face's weight. Later weight
// changes do not affect a returned State.
func (d *Die[F]) CurrentState() State[F] {
	s := make(State[F], len(d.faces))
	for i, f := range d.faces {
		s[i] = FaceWeight[F]{Face: f, Weight: d.weights[i]}
	}
	return s
}

// Probabilities returns the normalized sampling probability of each face.
func (d *Die[F]) Probabilities() (map[F]float64, error) {
	p, err := gamemath.Probabilities(d.weights)
	if err != nil {
		return nil, err
	}
	out := make(map[F]float64, len(p))
	for i, f := range d.faces {
		out[f] = p[i]
	}
	return out, nil
}

// FaceWeight is one row of a die's state.
type FaceWeight[F cmp.Ordered] struct {
	Face   F       `json:"face"`
	Weight float64 `json:"weight"`
}

// State is a die snapshot in face order.
type State[F cmp.Ordered] []FaceWeight[F]

// Weight returns the weight recorded for face.
func (s State[F]) Weight(face F) (float64, bool) {
	for _, fw := range s {
		if fw.Face == face {
			return fw.Weight, true
		}
	}
	return 0, false
}

// AsMap returns the snapshot as a fresh face -> weight map.
func (s State[F]) AsMap() map[F]float64 {
	m := make(map[F]float64, len(s))
	for _, fw := range s {
		m[fw.Face] = fw.Weight
	}
	return m
}

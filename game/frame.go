package game

import (
	"cmp"
	"slices"
	"strconv"
)

// Index and column names used by the two table forms.
const (
	IndexRoll  = "roll"
	IndexDie   = "die"
	ColumnFace = "face"
)

// Frame is a labeled 2-D table of faces. Index[i] labels row i (one value
// per IndexNames entry); Values[i][j] is the cell at row i, column j.
type Frame[F cmp.Ordered] struct {
	IndexNames []string `json:"indexNames"`
	Index      [][]int  `json:"index"`
	Columns    []string `json:"columns"`
	Values     [][]F    `json:"values"`
}

// newWide builds an empty wide frame for dice columns.
func newWide[F cmp.Ordered](dice, rolls int) *Frame[F] {
	cols := make([]string, dice)
	for j := range cols {
		cols[j] = strconv.Itoa(j)
	}
	return &Frame[F]{
		IndexNames: []string{IndexRoll},
		Index:      make([][]int, 0, rolls),
		Columns:    cols,
		Values:     make([][]F, 0, rolls),
	}
}

// Len returns the number of rows.
func (f *Frame[F]) Len() int { return len(f.Values) }

// Width returns the number of value columns.
func (f *Frame[F]) Width() int { return len(f.Columns) }

// Row returns a copy of row i.
func (f *Frame[F]) Row(i int) []F {
	return slices.Clone(f.Values[i])
}

// Clone returns a deep copy.
func (f *Frame[F]) Clone() *Frame[F] {
	out := &Frame[F]{
		IndexNames: slices.Clone(f.IndexNames),
		Index:      make([][]int, len(f.Index)),
		Columns:    slices.Clone(f.Columns),
		Values:     make([][]F, len(f.Values)),
	}
	for i := range f.Index {
		out.Index[i] = slices.Clone(f.Index[i])
	}
	for i := range f.Values {
		out.Values[i] = slices.Clone(f.Values[i])
	}
	return out
}

// Narrow reshapes a wide frame to long form: one row per (roll, die) pair in
// row-major order and a single face column.
func (f *Frame[F]) Narrow() *Frame[F] {
	out := &Frame[F]{
		IndexNames: []string{IndexRoll, IndexDie},
		Index:      make([][]int, 0, f.Len()*f.Width()),
		Columns:    []string{ColumnFace},
		Values:     make([][]F, 0, f.Len()*f.Width()),
	}
	for i, row := range f.Values {
		roll := i + 1
		if i < len(f.Index) && len(f.Index[i]) > 0 {
			roll = f.Index[i][0]
		}
		for j, v := range row {
			out.Index = append(out.Index, []int{roll, j})
			out.Values = append(out.Values, []F{v})
		}
	}
	return out
}

// Equal reports whether two frames have the same labels and values.
func (f *Frame[F]) Equal(o *Frame[F]) bool {
	if f == nil || o == nil {
		return f == o
	}
	if !slices.Equal(f.IndexNames, o.IndexNames) || !slices.Equal(f.Columns, o.Columns) {
		return false
	}
	if len(f.Index) != len(o.Index) || len(f.Values) != len(o.Values) {
		return false
	}
	for i := range f.Index {
		if !slices.Equal(f.Index[i], o.Index[i]) {
			return false
		}
	}
	for i := range f.Values {
		if !slices.Equal(f.Values[i], o.Values[i]) {
			return false
		}
	}
	return true
}

package die

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
	"github.com/Ashenafi-pixel/montecarlo-dice/gamemath"
)

func TestNew_InitialWeights(t *testing.T) {
	for _, faces := range [][]int{{1}, {1, 2}, {1, 2, 3, 4, 5, 6}} {
		d, err := New(faces)
		require.NoError(t, err)
		state := d.CurrentState()
		require.Len(t, state, len(faces))
		for i, fw := range state {
			assert.Equal(t, faces[i], fw.Face)
			assert.Equal(t, 1.0, fw.Weight)
		}
	}
}

func TestNew_TextFaces(t *testing.T) {
	d, err := New([]string{"H", "T"})
	require.NoError(t, err)
	assert.Equal(t, []string{"H", "T"}, d.Faces())
	assert.True(t, d.HasFace("H"))
	assert.False(t, d.HasFace("E"))
}

func TestNew_Errors(t *testing.T) {
	_, err := New([]int{})
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = New[int](nil)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = New([]int{1, 1, 2, 3, 4, 5})
	require.ErrorIs(t, err, errs.ErrDuplicateFace)

	_, err = New([]string{"a", "a"})
	require.ErrorIs(t, err, errs.ErrDuplicateFace)

	_, err = New([]int{1}, WithSource(nil))
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestNew_NaNFace(t *testing.T) {
	_, err := New([]float64{1, math.NaN(), math.NaN()})
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = New([]float64{math.NaN()})
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	d, err := New([]float64{0.5, 1.5})
	require.NoError(t, err)
	require.NoError(t, d.ChangeWeight(1.5, 3))
}

func TestChangeWeight(t *testing.T) {
	d, err := New([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	require.NoError(t, d.ChangeWeight(3, 0.01))
	w, ok := d.CurrentState().Weight(3)
	require.True(t, ok)
	assert.Equal(t, 0.01, w)
	for _, fw := range d.CurrentState() {
		if fw.Face != 3 {
			assert.Equal(t, 1.0, fw.Weight, "face %d", fw.Face)
		}
	}

	// idempotent
	require.NoError(t, d.ChangeWeight(3, 0.01))
	assert.Equal(t, 0.01, d.CurrentState().AsMap()[3])

	require.NoError(t, d.ChangeWeight(4, 0))
	assert.Equal(t, 0.0, d.CurrentState().AsMap()[4])
}

func TestChangeWeight_Errors(t *testing.T) {
	d, err := New([]int{1, 2, 3})
	require.NoError(t, err)

	require.ErrorIs(t, d.ChangeWeight(7, 1), errs.ErrUnknownFace)
	require.ErrorIs(t, d.ChangeWeight(1, -0.5), errs.ErrInvalidWeight)
	assert.Equal(t, 1.0, d.CurrentState().AsMap()[1], "rejected change must not apply")
}

func TestParseWeight(t *testing.T) {
	w, err := ParseWeight(" 2.5 ")
	require.NoError(t, err)
	assert.Equal(t, 2.5, w)

	_, err = ParseWeight("not a number")
	require.ErrorIs(t, err, errs.ErrInvalidWeight)
	_, err = ParseWeight("NaN")
	require.ErrorIs(t, err, errs.ErrInvalidWeight)
	_, err = ParseWeight("-1")
	require.ErrorIs(t, err, errs.ErrInvalidWeight)
}

func TestCurrentState_Snapshot(t *testing.T) {
	d, err := New([]int{1, 2})
	require.NoError(t, err)
	before := d.CurrentState()
	m := before.AsMap()

	require.NoError(t, d.ChangeWeight(1, 5))
	assert.Equal(t, 1.0, before[0].Weight)
	assert.Equal(t, 1.0, m[1])

	before[1].Weight = 99
	assert.Equal(t, 1.0, d.CurrentState()[1].Weight)
}

func TestRoll_Length(t *testing.T) {
	d, err := New([]int{1, 2, 3, 4, 5, 6}, WithSource(gamemath.NewSeededSource(3)))
	require.NoError(t, err)
	for _, n := range []int{1, 12, 500} {
		got, err := d.Roll(n)
		require.NoError(t, err)
		require.Len(t, got, n)
		for _, f := range got {
			assert.True(t, d.HasFace(f), "rolled unknown face %d", f)
		}
	}
}

func TestRoll_Errors(t *testing.T) {
	d, err := New([]int{1, 2})
	require.NoError(t, err)
	_, err = d.Roll(0)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	_, err = d.Roll(-3)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	require.NoError(t, d.ChangeWeight(1, 0))
	require.NoError(t, d.ChangeWeight(2, 0))
	_, err = d.Roll(1)
	require.ErrorIs(t, err, errs.ErrDegenerateDistribution)
}

func TestRoll_SingleNonzeroFace(t *testing.T) {
	d, err := New([]string{"a", "b", "c"}, WithSource(gamemath.NewSeededSource(9)))
	require.NoError(t, err)
	require.NoError(t, d.ChangeWeight("a", 0))
	require.NoError(t, d.ChangeWeight("c", 0))
	for _, n := range []int{1, 5, 100} {
		got, err := d.Roll(n)
		require.NoError(t, err)
		for _, f := range got {
			require.Equal(t, "b", f)
		}
	}
}

func TestRoll_DoesNotChangeState(t *testing.T) {
	d, err := New([]int{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, d.ChangeWeight(2, 4))
	before := d.CurrentState()
	_, err = d.Roll(50)
	require.NoError(t, err)
	assert.Equal(t, before, d.CurrentState())
}

func TestRoll_Seeded(t *testing.T) {
	a, _ := New([]int{1, 2, 3}, WithSource(gamemath.NewSeededSource(42)))
	b, _ := New([]int{1, 2, 3}, WithSource(gamemath.NewSeededSource(42)))
	ra, err := a.Roll(40)
	require.NoError(t, err)
	rb, err := b.Roll(40)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)
}

func TestProbabilities(t *testing.T) {
	d, err := New([]int{1, 2})
	require.NoError(t, err)
	require.NoError(t, d.ChangeWeight(2, 3))
	p, err := d.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p[1], 1e-12)
	assert.InDelta(t, 0.75, p[2], 1e-12)
}

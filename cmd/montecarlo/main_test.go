package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
)

func writeDice(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlay_SingleLoadedDie(t *testing.T) {
	dice := writeDice(t, "dice:\n  - faces: [1, 2]\n    weights: {2: 0}\n")
	out, err := run(t, "play", "--dice", dice, "--rolls", "20", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "rolls: 20  dice: 1  jackpots: 20")
	assert.Contains(t, out, "combinations (1 distinct)")
}

func TestPlay_SeededIsReproducible(t *testing.T) {
	dice := writeDice(t, "dice:\n  - faces: [a, b, c]\n  - faces: [c, b, a]\n")
	first, err := run(t, "play", "--dice", dice, "--rolls", "500", "--seed", "11", "--top", "0")
	require.NoError(t, err)
	second, err := run(t, "play", "--dice", dice, "--rolls", "500", "--seed", "11", "--top", "0")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "combinations (6 distinct)")
	assert.Contains(t, first, "permutations (9 distinct)")
}

func TestPlay_NarrowTableAndSave(t *testing.T) {
	dice := writeDice(t, "dice:\n  - faces: [1, 2, 3]\n  - faces: [1, 2, 3]\n")
	dataDir := t.TempDir()
	out, err := run(t, "play", "--dice", dice, "--rolls", "4", "--seed", "5", "--form", "narrow", "--save", "--data-dir", dataDir)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "roll"), out)
	assert.Contains(t, lines[0], "face")
	assert.Contains(t, out, "saved play")
	_, err = os.Stat(filepath.Join(dataDir, "recent_play.json"))
	require.NoError(t, err)
}

func TestPlay_Errors(t *testing.T) {
	dice := writeDice(t, "dice:\n  - faces: [1, 2]\n")
	_, err := run(t, "play", "--dice", dice, "--rolls", "3", "--form", "tall")
	require.Error(t, err)

	_, err = run(t, "play", "--dice", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	mismatched := writeDice(t, "dice:\n  - faces: [1, 2]\n  - faces: [1, 2, 3]\n")
	_, err = run(t, "play", "--dice", mismatched)
	require.Error(t, err)
}

func TestPlay_NonPositiveRolls(t *testing.T) {
	dice := writeDice(t, "dice:\n  - faces: [1, 2]\n")
	for _, rolls := range []string{"0", "-5"} {
		out, err := run(t, "play", "--dice", dice, "--rolls="+rolls)
		require.ErrorIs(t, err, errs.ErrInvalidInput, rolls)
		assert.NotContains(t, out, "jackpots")
	}
}

func TestPlay_UnknownStore(t *testing.T) {
	dice := writeDice(t, "dice:\n  - faces: [1, 2]\n")
	_, err := run(t, "play", "--dice", dice, "--store", "postgress")
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "montecarlo dev")
}

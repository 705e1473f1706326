package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashenafi-pixel/montecarlo-dice/analyzer"
	"github.com/Ashenafi-pixel/montecarlo-dice/config"
	"github.com/Ashenafi-pixel/montecarlo-dice/die"
	"github.com/Ashenafi-pixel/montecarlo-dice/game"
	"github.com/Ashenafi-pixel/montecarlo-dice/gamemath"
	"github.com/Ashenafi-pixel/montecarlo-dice/round"
)

func newTestServer(t *testing.T) (http.Handler, *round.FileStore[int]) {
	t.Helper()
	src := gamemath.NewSeededSource(99)
	dice := make([]*die.Die[int], 2)
	for i := range dice {
		d, err := die.New([]int{1, 2, 3}, die.WithSource(src))
		require.NoError(t, err)
		dice[i] = d
	}
	g, err := game.New(dice)
	require.NoError(t, err)
	store := round.NewFileStore[int](t.TempDir())
	cfg := &config.Config{Rolls: 40}
	srv, err := New[int](cfg, g, store, strconv.Atoi, nil)
	require.NoError(t, err)
	return srv.Handler(), store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestRecentBeforePlay(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/montecarlo/recent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	frame := decode[game.Frame[int]](t, rec)
	assert.Equal(t, 0, frame.Len())
	assert.Equal(t, []string{"0", "1"}, frame.Columns)

	rec = do(t, h, http.MethodGet, "/montecarlo/latest", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlayAndRead(t *testing.T) {
	h, store := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/montecarlo/play", `{"rolls": 25}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[playResponse](t, rec)
	assert.Equal(t, 25, resp.Rolls)
	assert.NotEmpty(t, resp.PlayID)

	rec = do(t, h, http.MethodGet, "/montecarlo/recent?form=narrow", "")
	require.Equal(t, http.StatusOK, rec.Code)
	narrow := decode[game.Frame[int]](t, rec)
	assert.Equal(t, 50, narrow.Len())
	assert.Equal(t, []string{game.ColumnFace}, narrow.Columns)

	rec = do(t, h, http.MethodGet, "/montecarlo/analysis", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[analyzer.Summary[int]](t, rec)
	assert.Equal(t, 25, summary.Rolls)
	total := 0
	for _, c := range summary.Combinations {
		total += c.Count
	}
	assert.Equal(t, 25, total)

	saved, err := store.Latest(t.Context())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, resp.PlayID, saved.PlayID)

	rec = do(t, h, http.MethodGet, "/montecarlo/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, resp.PlayID, decode[round.Record[int]](t, rec).PlayID)
}

func TestPlayDefaultRolls(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/montecarlo/play", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 40, decode[playResponse](t, rec).Rolls)
}

func TestPlayErrors(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/montecarlo/play", `{"rolls": -2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode[APIError](t, rec).Code)

	rec = do(t, h, http.MethodPost, "/montecarlo/play", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_BODY", decode[APIError](t, rec).Code)
}

func TestRecentInvalidForm(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/montecarlo/recent?form=tall", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_FORMAT", decode[APIError](t, rec).Code)
}

func TestChangeWeight(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/montecarlo/dice/1/weight", `{"face": "2", "weight": "0"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state := decode[die.State[int]](t, rec)
	w, ok := state.Weight(2)
	require.True(t, ok)
	assert.Equal(t, 0.0, w)

	rec = do(t, h, http.MethodGet, "/montecarlo/dice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	states := decode[[]die.State[int]](t, rec)
	require.Len(t, states, 2)
	w, _ = states[0].Weight(2)
	assert.Equal(t, 1.0, w)
	w, _ = states[1].Weight(2)
	assert.Equal(t, 0.0, w)
}

func TestChangeWeightErrors(t *testing.T) {
	h, _ := newTestServer(t)
	tests := []struct {
		path, body, code string
		status           int
	}{
		{"/montecarlo/dice/5/weight", `{"face": "1", "weight": "1"}`, "DIE_NOT_FOUND", http.StatusNotFound},
		{"/montecarlo/dice/x/weight", `{"face": "1", "weight": "1"}`, "DIE_NOT_FOUND", http.StatusNotFound},
		{"/montecarlo/dice/0/weight", `{"face": "9", "weight": "1"}`, "UNKNOWN_FACE", http.StatusBadRequest},
		{"/montecarlo/dice/0/weight", `{"face": "one", "weight": "1"}`, "UNKNOWN_FACE", http.StatusBadRequest},
		{"/montecarlo/dice/0/weight", `{"face": "1", "weight": "heavy"}`, "INVALID_WEIGHT", http.StatusBadRequest},
		{"/montecarlo/dice/0/weight", `{"face": "1", "weight": "-1"}`, "INVALID_WEIGHT", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, tt.status, rec.Code, "%s %s", tt.path, tt.body)
		assert.Equal(t, tt.code, decode[APIError](t, rec).Code, "%s %s", tt.path, tt.body)
	}
}

func TestPlayDegenerate(t *testing.T) {
	h, _ := newTestServer(t)
	for _, f := range []string{"1", "2", "3"} {
		rec := do(t, h, http.MethodPost, "/montecarlo/dice/0/weight", `{"face": "`+f+`", "weight": "0"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/montecarlo/play", `{"rolls": 3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "DEGENERATE_DISTRIBUTION", decode[APIError](t, rec).Code)
}

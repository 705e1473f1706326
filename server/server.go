package server

import (
	"cmp"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/Ashenafi-pixel/montecarlo-dice/analyzer"
	"github.com/Ashenafi-pixel/montecarlo-dice/config"
	"github.com/Ashenafi-pixel/montecarlo-dice/die"
	"github.com/Ashenafi-pixel/montecarlo-dice/game"
	"github.com/Ashenafi-pixel/montecarlo-dice/round"
)

// Server exposes one game over HTTP. Plays and weight changes take the write
// lock; table and statistic reads share the read lock.
type Server[F cmp.Ordered] struct {
	cfg       *config.Config
	mu        sync.RWMutex
	game      *game.Game[F]
	analyzer  *analyzer.Analyzer[F]
	store     round.Store[F]
	parseFace func(string) (F, error)
	log       *slog.Logger
}

// New wires a server. parseFace converts path/body face labels to F.
func New[F cmp.Ordered](cfg *config.Config, g *game.Game[F], store round.Store[F], parseFace func(string) (F, error), log *slog.Logger) (*Server[F], error) {
	a, err := analyzer.New(g)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server[F]{
		cfg:       cfg,
		game:      g,
		analyzer:  a,
		store:     store,
		parseFace: parseFace,
		log:       log,
	}, nil
}

// Handler returns the routed, logged handler.
func (s *Server[F]) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("POST /montecarlo/play", s.play)
	mux.HandleFunc("GET /montecarlo/recent", s.recent)
	mux.HandleFunc("GET /montecarlo/analysis", s.analysis)
	mux.HandleFunc("GET /montecarlo/dice", s.dice)
	mux.HandleFunc("POST /montecarlo/dice/{index}/weight", s.changeWeight)
	mux.HandleFunc("GET /montecarlo/latest", s.latest)
	return s.requestLogger(mux)
}

func (s *Server[F]) Run() error {
	port := s.cfg.Port
	if port <= 0 {
		port = 8081
	}
	addr := ":" + strconv.Itoa(port)
	s.log.Info("montecarlo listening", "addr", addr, "dice", len(s.game.Dice()))
	return http.ListenAndServe(addr, s.Handler())
}

// requestLogger logs method and path for each request.
func (s *Server[F]) requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path)
		h.ServeHTTP(w, r)
	})
}

func (s *Server[F]) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "service": "montecarlo"})
}

type playRequest struct {
	Rolls int `json:"rolls"`
}

type playResponse struct {
	PlayID string `json:"playId"`
	Rolls  int    `json:"rolls"`
}

// play handles POST /montecarlo/play. A missing or zero roll count falls back
// to the configured default.
func (s *Server[F]) play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_BODY")
			return
		}
	}
	if req.Rolls == 0 {
		req.Rolls = s.cfg.Rolls
	}

	s.mu.Lock()
	if err := s.game.Play(req.Rolls); err != nil {
		s.mu.Unlock()
		writeDomainError(w, err)
		return
	}
	rec := round.NewRecord(s.game, s.analyzer)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(r.Context(), rec); err != nil {
			s.log.Error("save recent play", "playId", rec.PlayID, "err", err)
			writeError(w, http.StatusInternalServerError, "failed to save play", "STORE_FAILED")
			return
		}
	}
	s.log.Info("played", "playId", rec.PlayID, "rolls", rec.Rolls)
	writeJSON(w, playResponse{PlayID: rec.PlayID, Rolls: rec.Rolls})
}

// recent handles GET /montecarlo/recent?form=wide|narrow (default wide).
func (s *Server[F]) recent(w http.ResponseWriter, r *http.Request) {
	formStr := r.URL.Query().Get("form")
	if formStr == "" {
		formStr = string(game.Wide)
	}
	form, err := game.ParseForm(formStr)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.mu.RLock()
	table, err := s.game.RecentPlay(form)
	s.mu.RUnlock()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, table)
}

func (s *Server[F]) analysis(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	summary := s.analyzer.Summary()
	s.mu.RUnlock()
	writeJSON(w, summary)
}

func (s *Server[F]) dice(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	dice := s.game.Dice()
	states := make([]die.State[F], len(dice))
	for i, d := range dice {
		states[i] = d.CurrentState()
	}
	s.mu.RUnlock()
	writeJSON(w, states)
}

type weightRequest struct {
	Face   string `json:"face"`
	Weight string `json:"weight"`
}

// changeWeight handles POST /montecarlo/dice/{index}/weight.
func (s *Server[F]) changeWeight(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.PathValue("index"))
	dice := s.game.Dice()
	if err != nil || idx < 0 || idx >= len(dice) {
		writeError(w, http.StatusNotFound, "die not found", "DIE_NOT_FOUND")
		return
	}
	var req weightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_BODY")
		return
	}
	face, err := s.parseFace(req.Face)
	if err != nil {
		writeError(w, http.StatusBadRequest, "face "+strconv.Quote(req.Face)+" is not valid", "UNKNOWN_FACE")
		return
	}
	weight, err := die.ParseWeight(req.Weight)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.mu.Lock()
	err = dice[idx].ChangeWeight(face, weight)
	state := dice[idx].CurrentState()
	s.mu.Unlock()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("weight changed", "die", idx, "face", req.Face, "weight", weight)
	writeJSON(w, state)
}

func (s *Server[F]) latest(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "no store configured", "NO_STORE")
		return
	}
	rec, err := s.store.Latest(r.Context())
	if err != nil {
		s.log.Error("load recent play", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load play", "STORE_FAILED")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no play recorded", "NOT_FOUND")
		return
	}
	writeJSON(w, rec)
}

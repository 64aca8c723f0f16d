package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/breaktime/internal/registry"
	"github.com/vovakirdan/breaktime/internal/storage"
)

const maxLimit = 100

// GameInfo is one entry of /api/games.
type GameInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HighScore int    `json:"high_score"`
}

// Score is one leaderboard row.
type Score struct {
	Rank       int       `json:"rank"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats mirrors storage.GameStats.
type Stats struct {
	GameID     string    `json:"game_id"`
	Games      int       `json:"games"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	TotalScore int64     `json:"total_score"`
	LastPlayed time.Time `json:"last_played,omitzero"`
}

type errorBody struct {
	Error string `json:"error"`
}

func statsFrom(st storage.GameStats) Stats {
	return Stats{
		GameID:     st.GameID,
		Games:      st.GamesCount,
		HighScore:  st.HighScore,
		AvgScore:   st.AvgScore,
		TotalScore: st.TotalScore,
		LastPlayed: st.LastPlayed,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client may be gone; nothing left to report to
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, registry.ErrUnknownGame):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status >= 500 {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// knownGame rejects game IDs that are not registered.
func (s *Server) knownGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !registry.Exists(id) {
			s.writeError(w, r, fmt.Errorf("%w %q", registry.ErrUnknownGame, id))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	games := registry.List()
	out := make([]GameInfo, 0, len(games))
	for _, g := range games {
		high, err := s.scores.HighScore(r.Context(), g.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out = append(out, GameInfo{ID: g.ID, Title: g.Title, HighScore: high})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) topScores(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > maxLimit {
			s.writeError(w, r, fmt.Errorf("%w: limit must be between 1 and %d", errBadRequest, maxLimit))
			return
		}
		limit = n
	}

	entries, err := s.scores.TopScores(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]Score, len(entries))
	for i, e := range entries {
		out[i] = Score{Rank: i + 1, Score: e.Score, Difficulty: e.Difficulty, CreatedAt: e.CreatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) gameStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.scores.GameStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsFrom(st))
}

func (s *Server) allStats(w http.ResponseWriter, r *http.Request) {
	all, err := s.scores.AllGamesStats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]Stats, len(all))
	for i, st := range all {
		out[i] = statsFrom(st)
	}
	writeJSON(w, http.StatusOK, out)
}

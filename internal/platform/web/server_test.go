package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/vovakirdan/breaktime/internal/games/jumper"
	_ "github.com/vovakirdan/breaktime/internal/games/stacker"
	"github.com/vovakirdan/breaktime/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, s := range []struct {
		game  string
		score int
		diff  string
	}{
		{"jumper", 120, "normal"},
		{"jumper", 340, "hard"},
		{"jumper", 80, "easy"},
		{"stacker", 1200, "normal"},
	} {
		_, err := store.SaveScore(ctx, s.game, s.score, s.diff)
		require.NoError(t, err)
	}

	return NewServer("", store, nil), store
}

func get(t *testing.T, h http.Handler, path string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func TestListGames(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv.Handler(), "/api/games")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	games := decode[[]GameInfo](t, rec.Body)
	require.Len(t, games, 2)
	assert.Equal(t, GameInfo{ID: "jumper", Title: "Tree Jump", HighScore: 340}, games[0])
	assert.Equal(t, GameInfo{ID: "stacker", Title: "Block Stack", HighScore: 1200}, games[1])
}

func TestTopScores(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv.Handler(), "/api/games/jumper/scores?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	scores := decode[[]Score](t, rec.Body)
	require.Len(t, scores, 2)
	assert.Equal(t, 1, scores[0].Rank)
	assert.Equal(t, 340, scores[0].Score)
	assert.Equal(t, "hard", scores[0].Difficulty)
	assert.Equal(t, 120, scores[1].Score)
	assert.False(t, scores[0].CreatedAt.IsZero())
}

func TestTopScoresErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/games/nope/scores", http.StatusNotFound},
		{"/api/games/jumper/scores?limit=0", http.StatusBadRequest},
		{"/api/games/jumper/scores?limit=abc", http.StatusBadRequest},
		{"/api/games/jumper/scores?limit=101", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := get(t, srv.Handler(), tc.path)
			assert.Equal(t, tc.status, rec.Code)
			body := decode[errorBody](t, rec.Body)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestStats(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv.Handler(), "/api/games/jumper/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[Stats](t, rec.Body)
	assert.Equal(t, 3, st.Games)
	assert.Equal(t, 340, st.HighScore)
	assert.Equal(t, int64(540), st.TotalScore)
	assert.InDelta(t, 180.0, st.AvgScore, 1e-9)

	rec = get(t, srv.Handler(), "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]Stats](t, rec.Body)
	require.Len(t, all, 2)
	assert.Equal(t, "jumper", all[0].GameID)
	assert.Equal(t, "stacker", all[1].GameID)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCompression(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("gzip", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/api/games", "Accept-Encoding", "gzip")
		require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		games := decode[[]GameInfo](t, zr)
		assert.Len(t, games, 2)
	})

	t.Run("zstd preferred", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/api/games", "Accept-Encoding", "gzip, zstd")
		require.Equal(t, "zstd", rec.Header().Get("Content-Encoding"))

		zr, err := zstd.NewReader(rec.Body)
		require.NoError(t, err)
		defer zr.Close()
		games := decode[[]GameInfo](t, zr)
		assert.Len(t, games, 2)
	})

	t.Run("identity", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/api/games")
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
	})
}

type failingSource struct{ ScoreSource }

func (failingSource) AllGamesStats(context.Context) ([]storage.GameStats, error) {
	return nil, errors.New("disk on fire")
}

func TestStoreFailureIs500(t *testing.T) {
	srv := NewServer("", failingSource{}, nil)

	rec := get(t, srv.Handler(), "/api/stats")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := NewServer("127.0.0.1:0", failingSource{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(ctx) }()

	cancel()
	assert.NoError(t, <-errc)
}

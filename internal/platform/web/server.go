// Package web serves the recorded scores as a read-only JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/breaktime/internal/storage"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
	HighScore(ctx context.Context, gameID string) (int, error)
	GameStats(ctx context.Context, gameID string) (storage.GameStats, error)
	AllGamesStats(ctx context.Context) ([]storage.GameStats, error)
}

// Server is the leaderboard HTTP server.
type Server struct {
	router chi.Router
	server *http.Server
	scores ScoreSource
	log    *log.Logger
}

// NewServer builds the router and an http.Server listening on addr. A nil
// logger discards output.
func NewServer(addr string, scores ScoreSource, logger *log.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := chi.NewRouter()
	s := &Server{
		router: r,
		scores: scores,
		log:    logger,
		server: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}

	r.Use(middleware.RequestID)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(Compression)

	r.Get("/healthz", s.health)
	r.Route("/api", func(api chi.Router) {
		api.Get("/games", s.listGames)
		api.Get("/stats", s.allStats)
		api.Route("/games/{id}", func(g chi.Router) {
			g.Use(s.knownGame)
			g.Get("/scores", s.topScores)
			g.Get("/stats", s.gameStats)
		})
	})

	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.log.Info("starting web server", "address", s.server.Addr)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting requests and waits for active ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessLog emits one line per request.
func accessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"latency", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

package storage

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breaktime/internal/core"
)

// saveTimeout bounds a best-effort write made from a game loop.
const saveTimeout = 2 * time.Second

// Recorder persists finished sessions for one difficulty. A nil Store turns
// every method into a no-op so play continues when the database is missing.
type Recorder struct {
	store      *Store
	log        *log.Logger
	difficulty string
}

// NewRecorder creates a recorder. store may be nil.
func NewRecorder(store *Store, logger *log.Logger, difficulty string) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, log: logger, difficulty: difficultyKey(difficulty)}
}

// Best returns the stored high score for a game on the recorder's difficulty,
// or 0 on any error. Scores from other difficulties never count.
func (r *Recorder) Best(gameID string) int {
	return r.BestOn(gameID, r.difficulty)
}

// BestOn is Best for an explicit difficulty.
func (r *Recorder) BestOn(gameID, difficulty string) int {
	if r.store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	best, err := r.store.HighScoreFor(ctx, gameID, difficulty)
	if err != nil {
		r.log.Warn("cannot load high score", "game", gameID, "difficulty", difficulty, "err", err)
		return 0
	}
	return best
}

// SessionOver returns a callback that saves the final score of every
// finished session of gameID.
func (r *Recorder) SessionOver(gameID string) func(core.GameState) {
	return func(state core.GameState) {
		if r.store == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if _, err := r.store.SaveScore(ctx, gameID, state.Score, r.difficulty); err != nil {
			r.log.Warn("cannot save score", "game", gameID, "score", state.Score, "err", err)
			return
		}
		r.log.Debug("score saved", "game", gameID, "score", state.Score)
	}
}

// HighScoreRecorder returns the hook games call when a session beats the best
// score they were given. The score itself is persisted by SessionOver, so the
// hook only announces the record.
func (r *Recorder) HighScoreRecorder() core.HighScoreFunc {
	return func(gameID string, score int) {
		r.log.Info("new high score", "game", gameID, "score", score, "difficulty", r.difficulty)
	}
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/breaktime/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, s *Store, gameID string, score int) {
	t.Helper()
	if _, err := s.SaveScore(context.Background(), gameID, score, ""); err != nil {
		t.Fatalf("SaveScore(%s, %d) failed: %v", gameID, score, err)
	}
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	mustSave(t, store, "jumper", 100)
	mustSave(t, store, "jumper", 50)
	mustSave(t, store, "jumper", 200)
	if _, err := store.SaveScore(ctx, "stacker", 500, "hard"); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(ctx, "jumper", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}
	if scores[0].Difficulty != "normal" {
		t.Errorf("Empty difficulty should default to normal, got %q", scores[0].Difficulty)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	stacker, err := store.TopScores(ctx, "stacker", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(stacker) != 1 || stacker[0].Difficulty != "hard" {
		t.Errorf("Expected 1 hard stacker score, got %v", stacker)
	}
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i := range 5 {
		mustSave(t, store, "test", (i+1)*100)
	}
	first, _ := store.SaveScore(ctx, "test", 500, "")

	scores, err := store.TopScores(ctx, "test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 500 || scores[2].Score != 400 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[1].ID != first {
		t.Errorf("Tied scores should list the older entry first")
	}

	all, _ := store.TopScores(ctx, "test", 0)
	if len(all) != 6 {
		t.Errorf("Limit 0 should default to 10, got %d rows", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	high, err := store.HighScore(ctx, "jumper")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, "jumper", 100)
	mustSave(t, store, "jumper", 300)
	mustSave(t, store, "jumper", 200)

	high, err = store.HighScore(ctx, "jumper")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreHighScoreForDifficulty(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, s := range []struct {
		score      int
		difficulty string
	}{{500, "easy"}, {200, "hard"}, {120, ""}, {90, "Normal"}, {350, "hard"}} {
		if _, err := store.SaveScore(ctx, "stacker", s.score, s.difficulty); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		difficulty string
		want       int
	}{
		{"easy", 500},
		{"normal", 120},
		{"", 120},
		{" HARD ", 350},
		{"nightmare", 0},
	}
	for _, tc := range tests {
		got, err := store.HighScoreFor(ctx, "stacker", tc.difficulty)
		if err != nil {
			t.Fatalf("HighScoreFor(%q) failed: %v", tc.difficulty, err)
		}
		if got != tc.want {
			t.Errorf("HighScoreFor(%q) = %d, expected %d", tc.difficulty, got, tc.want)
		}
	}

	if high, _ := store.HighScore(ctx, "stacker"); high != 500 {
		t.Errorf("HighScore() across difficulties = %d, expected 500", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	mustSave(t, store, "jumper", 100)
	mustSave(t, store, "jumper", 200)
	mustSave(t, store, "stacker", 300)

	n, err := store.ClearScores(ctx, "jumper")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearScores() removed %d rows, expected 2", n)
	}

	jumper, _ := store.TopScores(ctx, "jumper", 10)
	if len(jumper) != 0 {
		t.Errorf("Expected 0 jumper scores after clear, got %d", len(jumper))
	}
	stacker, _ := store.TopScores(ctx, "stacker", 10)
	if len(stacker) != 1 {
		t.Errorf("Stacker scores should not be affected by clearing jumper")
	}
}

func TestStoreStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	empty, err := store.GameStats(ctx, "jumper")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unplayed game stats = %+v", empty)
	}

	mustSave(t, store, "jumper", 10)
	mustSave(t, store, "jumper", 30)
	mustSave(t, store, "stacker", 400)

	js, err := store.GameStats(ctx, "jumper")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if js.GamesCount != 2 || js.HighScore != 30 || js.AvgScore != 20 || js.TotalScore != 40 {
		t.Errorf("jumper stats = %+v", js)
	}
	if js.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.AllGamesStats(ctx)
	if err != nil {
		t.Fatalf("AllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all[0].GameID != "jumper" || all[1].GameID != "stacker" {
		t.Errorf("AllGamesStats() = %+v, expected jumper then stacker", all)
	}
}

func TestRecorder(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, nil, "easy")

	if best := rec.Best("jumper"); best != 0 {
		t.Errorf("Best() on empty store = %d", best)
	}

	rec.SessionOver("jumper")(core.GameState{Score: 42, GameOver: true})
	rec.HighScoreRecorder()("jumper", 42)

	if best := rec.Best("jumper"); best != 42 {
		t.Errorf("Best() = %d, expected 42", best)
	}
	scores, _ := store.TopScores(context.Background(), "jumper", 1)
	if len(scores) != 1 || scores[0].Difficulty != "easy" {
		t.Errorf("saved entry = %+v", scores)
	}
}

func TestRecorderBestIgnoresOtherDifficulties(t *testing.T) {
	store := openTestStore(t)
	NewRecorder(store, nil, "easy").SessionOver("jumper")(core.GameState{Score: 900, GameOver: true})
	NewRecorder(store, nil, "hard").SessionOver("jumper")(core.GameState{Score: 150, GameOver: true})

	if best := NewRecorder(store, nil, "hard").Best("jumper"); best != 150 {
		t.Errorf("hard Best() = %d, expected 150", best)
	}
	if best := NewRecorder(store, nil, "").Best("jumper"); best != 0 {
		t.Errorf("normal Best() = %d, expected 0", best)
	}

	NewRecorder(store, nil, "").SessionOver("jumper")(core.GameState{Score: 60, GameOver: true})
	if best := NewRecorder(store, nil, "normal").Best("jumper"); best != 60 {
		t.Errorf("normal Best() = %d, expected 60", best)
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	rec := NewRecorder(nil, nil, "")

	// None of these may panic.
	rec.SessionOver("jumper")(core.GameState{Score: 1})
	rec.HighScoreRecorder()("jumper", 1)
	if rec.Best("jumper") != 0 {
		t.Error("Best() without a store should be 0")
	}
}

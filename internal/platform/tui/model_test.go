package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/registry"
	"github.com/vovakirdan/breaktime/internal/session"
	"github.com/vovakirdan/breaktime/internal/storage"
)

// titleGame sits on its title screen until it sees Confirm.
type titleGame struct {
	phase string
	high  int
}

func (g *titleGame) ID() string    { return "title" }
func (g *titleGame) Title() string { return "Title" }

func (g *titleGame) Reset(cfg core.RuntimeConfig) {
	g.phase = "menu"
	g.high = cfg.HighScore
}

func (g *titleGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionConfirm) {
		g.phase = "playing"
	}
	return core.StepResult{State: g.State()}
}

func (g *titleGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, g.phase)
}

func (g *titleGame) State() core.GameState {
	return core.GameState{Phase: g.phase, HighScore: g.high}
}

func init() {
	registry.Register("title", func() registry.Game { return &titleGame{} })
}

func startModel(t *testing.T, g registry.Game) GameModel {
	t.Helper()
	m := NewGameModel(context.Background(), g, GameOptions{
		Runtime: core.RuntimeConfig{ScreenW: 10, ScreenH: 2, TickRate: 100, Seed: 1},
	})
	go m.runner.Run(m.ctx) //nolint:errcheck // result observed through Done
	t.Cleanup(func() {
		m.Close()
		<-m.runner.Done()
	})
	return m
}

// nextFrame runs the model's frame command and feeds the result back in.
func nextFrame(t *testing.T, m GameModel) GameModel {
	t.Helper()
	msg := m.waitForFrame()()
	updated, _ := m.Update(msg)
	return updated.(GameModel)
}

func TestGameModelShowsFrames(t *testing.T) {
	m := startModel(t, &titleGame{})

	m = nextFrame(t, m)
	assert.Contains(t, m.View(), "menu")
	assert.Equal(t, "menu", m.State().Phase)
}

func TestGameModelBackFromTitle(t *testing.T) {
	m := startModel(t, &titleGame{})
	m = nextFrame(t, m)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(GameModel)

	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
	require.NotNil(t, cmd)
	select {
	case <-m.runner.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner still running after leaving the game")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := startModel(t, &titleGame{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(GameModel)

	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())
	require.NotNil(t, cmd)
}

func TestGameModelIgnoresStaleRunner(t *testing.T) {
	m := startModel(t, &titleGame{})
	m = nextFrame(t, m)

	other := session.NewRunner(&titleGame{}, session.Options{})
	updated, cmd := m.Update(framesClosedMsg{src: other})
	m = updated.(GameModel)
	assert.Nil(t, cmd)
	assert.False(t, m.IsQuitting())

	updated, _ = m.Update(frameMsg{src: other, frame: session.Frame{View: "stale"}})
	assert.NotContains(t, updated.(GameModel).View(), "stale")
}

func TestMenuDifficultyAndSelect(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	require.NotEmpty(t, m.items)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(MenuModel)
	assert.Equal(t, "hard", m.Config().Difficulty)
	assert.Contains(t, m.View(), "< hard >")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(MenuModel)
	assert.Equal(t, "easy", m.Config().Difficulty)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(MenuModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, m.items[0].GameID, m.Selected().GameID)
	assert.NotNil(t, cmd)
}

func TestMenuBestFollowsDifficulty(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := NewMenuModel(storage.NewRecorder(store, nil, ""), core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	require.NotEmpty(t, m.items)
	id := m.items[0].GameID

	ctx := context.Background()
	_, err = store.SaveScore(ctx, id, 700, "easy")
	require.NoError(t, err)
	_, err = store.SaveScore(ctx, id, 40, "hard")
	require.NoError(t, err)
	m.loadBests()
	assert.Equal(t, 0, m.items[0].Best, "normal has no scores")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(MenuModel)
	assert.Equal(t, 40, m.items[0].Best)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(MenuModel)
	assert.Equal(t, 700, m.items[0].Best)
	assert.Contains(t, m.View(), "best 700")
}

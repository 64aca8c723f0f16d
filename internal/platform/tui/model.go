package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/registry"
	"github.com/vovakirdan/breaktime/internal/session"
	"github.com/vovakirdan/breaktime/internal/storage"
)

// Phases in which a game shows its own title screen. Back pressed there
// leaves the game for the host menu.
var titlePhases = map[string]bool{
	"menu": true,
	"idle": true,
}

// GameOptions configures a hosted game.
type GameOptions struct {
	Runtime  core.RuntimeConfig
	Recorder *storage.Recorder // may be nil
	Logger   *log.Logger       // may be nil

	// HoldWindow overrides DefaultHoldWindow for steering keys.
	HoldWindow time.Duration
}

// shutdownWait bounds how long Run waits for the runner to finish a final
// score save after the program exits.
const shutdownWait = 2 * time.Second

// Runner messages carry their source so that a model never acts on a
// message left over from a previous game in the same program.
type frameMsg struct {
	src   *session.Runner
	frame session.Frame
}

type framesClosedMsg struct{ src *session.Runner }

type sessionEndedMsg struct {
	src *session.Runner
	err error
}

// GameModel is the Bubble Tea model for one running game. The game itself
// lives on a session.Runner goroutine; the model only forwards keys and
// displays the frames the runner publishes.
type GameModel struct {
	runner    *session.Runner
	ctx       context.Context
	cancel    context.CancelFunc
	keyMapper *KeyMapper
	hold      time.Duration
	immediate bool // game applies actions through registry.ActionHandler
	log       *log.Logger

	view       string
	state      core.GameState
	quitting   bool
	backToMenu bool
}

// NewGameModel resets game with the high score known to the recorder and
// wraps it in a runner. The runner starts in Init.
func NewGameModel(ctx context.Context, game registry.Game, opts GameOptions) GameModel {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = storage.NewRecorder(nil, opts.Logger, rt.Difficulty)
	}
	rt.HighScore = rec.Best(game.ID())
	rt.OnHighScore = rec.HighScoreRecorder()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hold := opts.HoldWindow
	if hold <= 0 {
		hold = DefaultHoldWindow
	}

	game.Reset(rt)
	if err := registry.ConfigError(game); err != nil {
		logger.Warn("invalid game config, playing with defaults", "game", game.ID(), "err", err)
	}
	runner := session.NewRunner(game, session.Options{
		Width:      rt.ScreenW,
		Height:     rt.ScreenH,
		TickRate:   rt.TickRate,
		Encode:     RenderScreen,
		OnGameOver: rec.SessionOver(game.ID()),
		Logger:     logger,
	})

	_, immediate := game.(registry.ActionHandler)
	runCtx, cancel := context.WithCancel(ctx)

	return GameModel{
		runner:    runner,
		ctx:       runCtx,
		cancel:    cancel,
		keyMapper: NewKeyMapper(),
		hold:      hold,
		immediate: immediate,
		log:       logger,
		state:     game.State(),
	}
}

// Init starts the runner and begins listening for frames.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(m.run(), m.waitForFrame())
}

func (m GameModel) run() tea.Cmd {
	runner, ctx := m.runner, m.ctx
	return func() tea.Msg {
		return sessionEndedMsg{src: runner, err: runner.Run(ctx)}
	}
}

// waitForFrame returns a command that waits for the next published frame.
func (m GameModel) waitForFrame() tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		f, ok := <-runner.Frames()
		if !ok {
			return framesClosedMsg{src: runner}
		}
		return frameMsg{src: runner, frame: f}
	}
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runner.Resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		if msg.src != m.runner {
			return m, nil
		}
		m.view = msg.frame.View
		m.state = msg.frame.State
		return m, m.waitForFrame()

	case framesClosedMsg:
		if msg.src != m.runner || m.backToMenu {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case sessionEndedMsg:
		if msg.src == m.runner && msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.log.Error("session ended", "error", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// handleKey forwards a key to the runner.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case action == core.ActionNone:
		return m, nil

	case action == core.ActionBack && titlePhases[m.state.Phase]:
		m.backToMenu = true
		m.Close()
		return m, tea.Quit

	case IsSteering(action) && !m.immediate:
		m.runner.PressFor(action, m.hold)

	default:
		m.runner.Trigger(action)
	}
	return m, nil
}

// Close stops the runner. Safe to call more than once.
func (m GameModel) Close() {
	m.runner.Stop()
	m.cancel()
}

// View renders the latest frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return m.view
}

// State returns the game state carried by the latest frame.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the terminal until the user quits, backs out of the
// game's title screen or ctx is canceled.
func Run(ctx context.Context, game registry.Game, opts GameOptions) error {
	model := NewGameModel(ctx, game, opts)
	defer func() {
		model.Close()
		select {
		case <-model.runner.Done():
		case <-time.After(shutdownWait):
		}
	}()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

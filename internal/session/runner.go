// Package session runs one game on a dedicated goroutine. Ticks and input
// commands are applied by that goroutine in arrival order, so game code
// never needs locking.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/registry"
)

// Options configures a Runner.
type Options struct {
	Width    int // render buffer size in cells
	Height   int
	TickRate int // fallback rate for games that are not registry.Paced

	// Encode converts the render buffer into the published view. Defaults
	// to (*core.Screen).String.
	Encode func(*core.Screen) string
	// OnGameOver is called from the runner goroutine once per session when
	// the game enters its game-over state.
	OnGameOver func(core.GameState)

	Logger *log.Logger
}

// Runner owns a game for the lifetime of a session.
type Runner struct {
	game   registry.Game
	opts   Options
	log    *log.Logger
	screen *core.Screen
	now    func() time.Time

	input    core.InputFrame
	holds    map[core.Action]time.Time // auto-release deadlines
	tick     uint64
	gameOver bool

	cmds     chan command
	frames   chan Frame
	done     chan struct{}
	doneOnce sync.Once
	exited   chan struct{}
}

// NewRunner creates a runner for a game that has already been Reset.
func NewRunner(game registry.Game, opts Options) *Runner {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	if opts.Encode == nil {
		opts.Encode = (*core.Screen).String
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Runner{
		game:   game,
		opts:   opts,
		log:    logger.With("game", game.ID()),
		screen: core.NewScreen(opts.Width, opts.Height),
		now:    time.Now,
		input:  core.NewInputFrame(),
		holds:  make(map[core.Action]time.Time),
		cmds:   make(chan command, 64),
		frames: make(chan Frame, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Frames returns the channel of rendered frames. Only the latest frame is
// kept if the consumer falls behind. The channel is closed when Run returns.
func (r *Runner) Frames() <-chan Frame {
	return r.frames
}

// Done is closed when Run has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.exited
}

// Run drives the game until the context is canceled, Stop is called or a
// Quit action is triggered. It returns ctx.Err() on cancellation and nil
// otherwise.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.exited)
	defer close(r.frames)
	defer r.Stop()

	interval := registry.Interval(r.game, r.opts.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Debug("session started", "interval", interval)
	r.gameOver = r.game.State().GameOver
	r.publish()

	// The ticker is parked while the game reports Paused.
	parked := false
	_, handlesActions := r.game.(registry.ActionHandler)

	for {
		var ticks <-chan time.Time
		if !parked {
			ticks = ticker.C
		}

		select {
		case <-ctx.Done():
			r.log.Debug("session canceled", "ticks", r.tick)
			return ctx.Err()

		case <-r.done:
			r.log.Debug("session stopped", "ticks", r.tick)
			return nil

		case cmd := <-r.cmds:
			if cmd.kind == cmdTrigger && cmd.action == core.ActionQuit {
				r.log.Debug("session quit", "ticks", r.tick)
				return nil
			}
			r.apply(cmd)
			// A parked game without ActionHandler only sees triggers in Step.
			if parked && cmd.kind == cmdTrigger && !handlesActions {
				r.step()
			}

		case <-ticks:
			r.step()
		}

		r.checkGameOver()
		r.publish()

		if paused := r.game.State().Paused; paused != parked {
			parked = paused
			if parked {
				ticker.Stop()
				r.log.Debug("ticker parked", "ticks", r.tick)
			} else {
				ticker.Reset(interval)
				r.log.Debug("ticker resumed", "ticks", r.tick)
			}
		}

		if next := registry.Interval(r.game, r.opts.TickRate); next != interval {
			r.log.Debug("tick interval changed", "from", interval, "to", next)
			interval = next
			if !parked {
				ticker.Reset(interval)
			}
		}
	}
}

func (r *Runner) apply(cmd command) {
	r.log.Debug("command", "kind", cmd.kind, "action", cmd.action)
	switch cmd.kind {
	case cmdTrigger:
		if h, ok := r.game.(registry.ActionHandler); ok {
			h.HandleAction(cmd.action)
		} else {
			r.input.Set(cmd.action)
		}
	case cmdPress:
		r.input.Hold(cmd.action)
		delete(r.holds, cmd.action)
	case cmdPressFor:
		r.input.Hold(cmd.action)
		r.holds[cmd.action] = r.now().Add(cmd.hold)
	case cmdRelease:
		r.input.Release(cmd.action)
		delete(r.holds, cmd.action)
	case cmdResize:
		r.screen.Resize(cmd.width, cmd.height)
	}
}

func (r *Runner) step() {
	now := r.now()
	for a, deadline := range r.holds {
		if !now.Before(deadline) {
			r.input.Release(a)
			delete(r.holds, a)
		}
	}

	r.game.Step(r.input.Clone())
	r.input.Clear()
	r.tick++
}

func (r *Runner) checkGameOver() {
	state := r.game.State()
	if state.GameOver && !r.gameOver {
		r.log.Info("game over", "score", state.Score, "best", state.HighScore, "ticks", r.tick)
		if r.opts.OnGameOver != nil {
			r.opts.OnGameOver(state)
		}
	}
	r.gameOver = state.GameOver
}

// publish renders and offers the frame, replacing a stale unread one.
func (r *Runner) publish() {
	r.game.Render(r.screen)
	f := Frame{Tick: r.tick, View: r.opts.Encode(r.screen), State: r.game.State()}

	select {
	case r.frames <- f:
		return
	default:
	}
	select {
	case <-r.frames:
	default:
	}
	select {
	case r.frames <- f:
	default:
	}
}

func (r *Runner) send(c command) {
	select {
	case r.cmds <- c:
	case <-r.done:
	case <-r.exited:
	}
}

// Trigger delivers an edge-triggered action. Games implementing
// registry.ActionHandler apply it immediately; others see it in the next
// tick's InputFrame.
func (r *Runner) Trigger(a core.Action) {
	r.send(command{kind: cmdTrigger, action: a})
}

// Press holds an action until Release.
func (r *Runner) Press(a core.Action) {
	r.send(command{kind: cmdPress, action: a})
}

// PressFor holds an action for d. Repeated calls extend the hold, which is
// how key repeat keeps a direction held on terminals without key-up events.
func (r *Runner) PressFor(a core.Action, d time.Duration) {
	r.send(command{kind: cmdPressFor, action: a, hold: d})
}

// Release stops holding an action.
func (r *Runner) Release(a core.Action) {
	r.send(command{kind: cmdRelease, action: a})
}

// Resize changes the render buffer dimensions.
func (r *Runner) Resize(width, height int) {
	r.send(command{kind: cmdResize, width: width, height: height})
}

// Stop ends Run. Safe to call more than once and from any goroutine.
func (r *Runner) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

// Package jumper implements an endless vertical platformer: the player bounces
// off procedurally generated rungs, the camera follows upward only, and the
// session ends when the player falls below the visible window.
package jumper

import (
	"time"

	"github.com/vovakirdan/breaktime/internal/config"
	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/registry"
)

// Game phases.
const (
	StateMenu     = "menu"
	StatePlaying  = "playing"
	StateGameOver = "gameover"
)

// Game implements the platformer logic.
type Game struct {
	cfg       config.JumperConfig
	configErr error // why Reset fell back to defaults
	runtime   core.RuntimeConfig
	rng       *core.RNG

	state  string
	paused bool

	player    Player
	platforms []Platform // creation order, which is ascending ID order
	camera    Camera
	nextID    uint32
	startY    float64

	score     int
	highScore int
	tick      uint64

	lastBounce uint32 // ID of the most recent platform bounced on
	bounces    int
}

// New creates a new game instance. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("jumper", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "jumper"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tree Jump"
}

// Reset loads configuration and shows the menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	preset, err := config.ParsePreset(runtime.Difficulty)
	if err != nil {
		preset = config.DifficultyNormal
	}
	cfg, err := config.LoadJumper(runtime.ConfigPath, preset)
	if err != nil {
		cfg = config.DefaultJumperConfig()
		config.ApplyJumperPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.configErr = err

	g.rng = core.NewRNG(runtime.Seed)
	g.highScore = runtime.HighScore
	g.tick = 0
	g.resetWorld()
	g.state = StateMenu
}

func (g *Game) resetWorld() {
	w := g.cfg.World
	g.startY = w.Height - g.cfg.Player.StartOffset
	g.player = Player{
		X: (w.Width - g.cfg.Player.Size) / 2,
		Y: g.startY,
	}
	g.camera = Camera{}
	g.score = 0
	g.paused = false
	g.bounces = 0
	g.lastBounce = 0
	g.buildLadder()
}

// Start begins a new session with a fresh ladder.
func (g *Game) Start() {
	g.resetWorld()
	g.state = StatePlaying
}

// ToMenu returns to the menu without recording the session.
func (g *Game) ToMenu() {
	g.state = StateMenu
	g.paused = false
}

// Step handles the frame's actions and advances the simulation one tick while
// playing. Horizontal movement reads the held directions of the frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.Triggered() {
		g.handleAction(a)
	}

	if g.state == StatePlaying && !g.paused {
		g.advance(in.IsHeld(core.ActionLeft), in.IsHeld(core.ActionRight))
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) handleAction(a core.Action) {
	switch a {
	case core.ActionConfirm, core.ActionJump:
		if g.state != StatePlaying {
			g.Start()
		}
	case core.ActionRestart:
		g.Start()
	case core.ActionBack:
		g.ToMenu()
	case core.ActionPause:
		if g.state == StatePlaying {
			g.paused = !g.paused
		}
	}
}

// advance runs one fixed tick of the simulation.
func (g *Game) advance(left, right bool) {
	g.tick++
	p := &g.player
	size := g.cfg.Player.Size
	world := g.cfg.World

	p.VX = steer(p.VX, left, right, g.cfg.Physics)
	p.X += p.VX
	p.VY += g.cfg.Physics.Gravity
	p.Y += p.VY
	p.X = WrapX(p.X, size, world.Width)

	// The first platform that catches the player flips VY negative, so later
	// ones in the same tick are skipped.
	p.OnGround = false
	for _, plat := range g.platforms {
		if landsOn(*p, size, g.platformRect(plat), g.cfg.Platforms.LandingTolerance) {
			p.VY = g.cfg.Physics.JumpImpulse
			p.OnGround = true
			g.lastBounce = plat.ID
			g.bounces++
		}
	}

	if target := p.Y - g.cfg.Camera.LookAhead*world.Height; target < g.camera.Y {
		g.camera.Y = target
	}

	if height := int((g.startY - p.Y) / 10); height > g.score {
		g.score = height
	}

	g.extendLadder()
	g.prune()

	if p.Y > g.camera.Y+world.Height+g.cfg.Camera.GameOverMargin {
		g.state = StateGameOver
		g.finishSession()
	}
}

func (g *Game) finishSession() {
	if g.score <= g.highScore {
		return
	}
	g.highScore = g.score
	if g.runtime.OnHighScore != nil {
		g.runtime.OnHighScore(g.ID(), g.score)
	}
}

// TickInterval returns the fixed simulation interval.
func (g *Game) TickInterval() time.Duration {
	return g.cfg.TickInterval()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.state,
		Score:     g.score,
		HighScore: max(g.highScore, g.score),
		Level:     1,
		GameOver:  g.state == StateGameOver,
		Paused:    g.paused,
	}
}

// ConfigError returns the error that made the last Reset use the default
// config, or nil.
func (g *Game) ConfigError() error {
	return g.configErr
}

// Player returns the player's current kinematic state.
func (g *Game) Player() Player {
	return g.player
}

// Platforms returns the live platforms. Callers must not modify the slice.
func (g *Game) Platforms() []Platform {
	return g.platforms
}

// Camera returns the camera position.
func (g *Game) Camera() Camera {
	return g.camera
}

// Config returns the active configuration.
func (g *Game) Config() config.JumperConfig {
	return g.cfg
}

// LastBounce returns the ID of the last platform bounced on and the number of
// bounces this session.
func (g *Game) LastBounce() (uint32, int) {
	return g.lastBounce, g.bounces
}

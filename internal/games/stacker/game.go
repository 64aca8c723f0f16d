// Package stacker implements a falling-block puzzle on a fixed grid: one active
// piece descends on a level-dependent timer, full rows clear for points and
// every ten lines raise the level.
package stacker

import (
	"time"

	"github.com/vovakirdan/breaktime/internal/config"
	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/registry"
)

// Game phases.
const (
	StateIdle     = "idle"     // Not started; waiting for Enter
	StateRunning  = "running"  // Piece falling
	StatePaused   = "paused"   // Frozen by the player
	StateGameOver = "gameover" // A new piece could not spawn
)

// ActivePiece is the falling piece. (X, Y) is the top-left of its shape matrix.
type ActivePiece struct {
	Type     PieceType
	Rotation int
	X, Y     int
}

// Game implements the falling-block game logic.
type Game struct {
	cfg       config.StackerConfig
	configErr error // why Reset fell back to defaults
	runtime   core.RuntimeConfig
	rng       *core.RNG

	board *Board
	piece ActivePiece
	next  PieceType

	state     string
	score     int
	lines     int
	level     int
	highScore int
	tick      uint64
	lastClear int // rows removed by the most recent placement
}

// New creates a new game instance. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("stacker", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "stacker"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Block Stack"
}

// Reset loads configuration and returns the game to the idle state with an
// empty board.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	preset, err := config.ParsePreset(runtime.Difficulty)
	if err != nil {
		preset = config.DifficultyNormal
	}
	cfg, err := config.LoadStacker(runtime.ConfigPath, preset)
	if err != nil {
		cfg = config.DefaultStackerConfig()
		config.ApplyStackerPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.configErr = err

	g.rng = core.NewRNG(runtime.Seed)
	g.board = NewBoard(cfg.Board.Width, cfg.Board.Height)
	g.highScore = runtime.HighScore
	g.tick = 0
	g.clearSession()
	g.state = StateIdle
}

func (g *Game) clearSession() {
	g.board.Reset()
	g.piece = ActivePiece{}
	g.next = PieceNone
	g.score = 0
	g.lines = 0
	g.level = 1
	g.lastClear = 0
}

// Start begins a fresh session from idle or game over.
func (g *Game) Start() {
	if g.state != StateIdle && g.state != StateGameOver {
		return
	}
	g.clearSession()
	g.next = g.randomPiece()
	g.state = StateRunning
	g.spawn()
}

// ResetToIdle abandons the current session.
func (g *Game) ResetToIdle() {
	if g.state != StateRunning && g.state != StatePaused {
		return
	}
	g.clearSession()
	g.state = StateIdle
}

// TogglePause switches between running and paused.
func (g *Game) TogglePause() {
	switch g.state {
	case StateRunning:
		g.state = StatePaused
	case StatePaused:
		g.state = StateRunning
	}
}

// Move shifts the active piece. A blocked downward move places the piece;
// other blocked moves are ignored. Reports whether the piece moved.
func (g *Game) Move(dx, dy int) bool {
	if g.state != StateRunning {
		return false
	}
	p := g.piece
	if g.board.IsValid(p.Type, p.X+dx, p.Y+dy, p.Rotation) {
		g.piece.X += dx
		g.piece.Y += dy
		return true
	}
	if dy > 0 {
		g.place()
	}
	return false
}

// Rotate advances to the next rotation state if it fits in place.
func (g *Game) Rotate() bool {
	if g.state != StateRunning {
		return false
	}
	p := g.piece
	next := (p.Rotation + 1) % p.Type.Rotations()
	if !g.board.IsValid(p.Type, p.X, p.Y, next) {
		return false
	}
	g.piece.Rotation = next
	return true
}

// HardDrop drops the piece to its resting row and places it.
func (g *Game) HardDrop() {
	if g.state != StateRunning {
		return
	}
	g.piece.Y = g.dropRow()
	g.place()
}

// dropRow returns the lowest valid row for the active piece.
func (g *Game) dropRow() int {
	p := g.piece
	y := p.Y
	for g.board.IsValid(p.Type, p.X, y+1, p.Rotation) {
		y++
	}
	return y
}

func (g *Game) place() {
	p := g.piece
	g.board.Stamp(p.Type, p.X, p.Y, p.Rotation)

	n := g.board.ClearLines()
	g.lastClear = n
	if n > 0 {
		g.score += n * g.cfg.Scoring.PointsPerLine * g.level
		g.lines += n
		g.level = g.lines/g.cfg.Scoring.LinesPerLevel + 1
	}
	g.spawn()
}

func (g *Game) spawn() {
	t := g.next
	g.next = g.randomPiece()
	g.piece = ActivePiece{Type: t, X: g.board.Width/2 - 1}

	if !g.board.IsValid(t, g.piece.X, g.piece.Y, 0) {
		g.state = StateGameOver
		g.finishSession()
	}
}

func (g *Game) randomPiece() PieceType {
	return PieceTypes[g.rng.Intn(len(PieceTypes))]
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

// HandleAction applies one edge-triggered input immediately.
func (g *Game) HandleAction(a core.Action) {
	switch a {
	case core.ActionLeft:
		g.Move(-1, 0)
	case core.ActionRight:
		g.Move(1, 0)
	case core.ActionDown:
		g.Move(0, 1)
	case core.ActionUp:
		g.Rotate()
	case core.ActionJump:
		if g.state == StateRunning {
			g.HardDrop()
		} else {
			g.Start()
		}
	case core.ActionConfirm:
		g.Start()
	case core.ActionPause:
		g.TogglePause()
	case core.ActionRestart:
		g.ResetToIdle()
		g.Start()
	case core.ActionBack:
		if g.state == StateGameOver {
			g.clearSession()
			g.state = StateIdle
		} else {
			g.ResetToIdle()
		}
	}
}

// Step applies the frame's actions and then performs one gravity tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.Triggered() {
		g.HandleAction(a)
	}
	if g.state == StateRunning {
		g.tick++
		g.Move(0, 1)
	}
	return core.StepResult{State: g.State()}
}

// TickInterval returns the gravity interval for the current level.
func (g *Game) TickInterval() time.Duration {
	return g.cfg.Timing.Interval(g.level)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.state,
		Score:     g.score,
		HighScore: max(g.highScore, g.score),
		Level:     g.level,
		GameOver:  g.state == StateGameOver,
		Paused:    g.state == StatePaused,
	}
}

// ConfigError returns the error that made the last Reset use the default
// config, or nil.
func (g *Game) ConfigError() error {
	return g.configErr
}

// Board returns the settled grid. Callers must not modify it.
func (g *Game) Board() *Board {
	return g.board
}

// Piece returns the active piece.
func (g *Game) Piece() ActivePiece {
	return g.piece
}

// Next returns the piece that will spawn after the active one.
func (g *Game) Next() PieceType {
	return g.next
}

// Lines returns the total number of cleared rows this session.
func (g *Game) Lines() int {
	return g.lines
}

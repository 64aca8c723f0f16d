package core

// HighScoreFunc is invoked by a game when a session ends with a score that beats
// the best score it was given at Reset.
type HighScoreFunc func(gameID string, score int)

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// ConfigPath points at a custom YAML file for the game. Empty uses the
	// default search order.
	ConfigPath string
	// Difficulty is a preset name ("easy", "normal", "hard"). Empty means normal.
	Difficulty string

	// HighScore is the best score known to the host for this game.
	HighScore int
	// OnHighScore is called when a session beats HighScore. May be nil.
	OnHighScore HighScoreFunc
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase     string // Engine-specific state machine phase
	Score     int    // Current score
	HighScore int    // Best score known to the session
	Level     int    // Current level, 0 if the game has no levels
	GameOver  bool   // Whether the game has ended
	Paused    bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

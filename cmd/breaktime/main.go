// breaktime plays short terminal games: a vertical platform jumper and a
// falling-block stacker.
//
// Usage:
//
//	breaktime list              - List available games
//	breaktime play <game>       - Play a game
//	breaktime menu              - Start menu to pick games interactively
//	breaktime serve             - Start SSH server for remote play
//	breaktime web               - Serve the scoreboard as JSON over HTTP
//	breaktime scores <game>     - Show high scores for a game
//	breaktime sim <game>        - Let the autoplayer play many sessions
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.breaktime/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaktime/internal/config"
	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/registry"

	// Import games to register them
	_ "github.com/vovakirdan/breaktime/internal/games/jumper"
	_ "github.com/vovakirdan/breaktime/internal/games/stacker"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaktime",
	Short: "Breaktime - two quick games for your terminal",
	Long: `Breaktime is a pair of terminal games for a short break:
Tree Jump, a vertical platform jumper, and Block Stack, a falling-block
puzzle.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  web      - Serve scores over HTTP
  scores   - View high scores
  sim      - Run the autoplayer and summarize its scores

Examples:
  breaktime list
  breaktime play jumper
  breaktime play stacker --difficulty hard
  breaktime menu
  breaktime serve --ssh :2222
  breaktime scores stacker`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		if flagFPS < 1 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return checkGameConfig(cmd, args)
	},
}

// configAnnotation marks commands that start games: "arg" for commands whose
// first argument is the game ID, "all" for hosts that can start any game.
const configAnnotation = "breaktime/config"

// checkGameConfig loads the config of every game cmd may start, so a bad
// --config file is refused up front instead of played on defaults.
func checkGameConfig(cmd *cobra.Command, args []string) error {
	var games []string
	switch cmd.Annotations[configAnnotation] {
	case "arg":
		if len(args) > 0 {
			games = args[:1]
		}
	case "all":
		for _, g := range registry.List() {
			games = append(games, g.ID)
		}
	}

	for _, id := range games {
		if err := config.Check(id, flagConfig, flagDifficulty); err != nil {
			return fmt.Errorf("%s config: %w", id, err)
		}
	}
	return nil
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breaktime/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// runtimeConfig builds the game config shared by every command from the
// global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty
	return cfg
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/breaktime/internal/platform/tui"
	"github.com/vovakirdan/breaktime/internal/registry"
	"github.com/vovakirdan/breaktime/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Enter        - Start from the title screen
  A/D, Left/Right - Move (stacker: shift the piece)
  W/Up         - Rotate (stacker)
  S/Down       - Soft drop (stacker)
  Space        - Hard drop (stacker)
  P            - Pause
  R            - Restart
  B/Esc        - Back to the title screen
  Q/Ctrl+C     - Quit

Difficulty options:
  easy, normal, hard

Examples:
  breaktime play jumper
  breaktime play stacker --difficulty hard
  breaktime play jumper --seed 42
  breaktime play jumper --config ./my-jumper.yaml`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{configAnnotation: "arg"},
	Run:         runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'breaktime list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := terminalSize()
	cfg := runtimeConfig(width, height)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.Run(ctx, game, tui.GameOptions{
		Runtime:  cfg,
		Recorder: storage.NewRecorder(store, logger, cfg.Difficulty),
		Logger:   logger,
	})
	if err != nil {
		logger.Error("game stopped", "game", gameID, "err", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// openStore opens the scores database. Play continues without one, so a
// failure is only reported.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaktime/internal/platform/tui"
	"github.com/vovakirdan/breaktime/internal/registry"
	"github.com/vovakirdan/breaktime/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select game
  Tab             - Scoreboard
  Q               - Quit

Examples:
  breaktime menu
  breaktime menu --fps 30
  breaktime menu --db ./scores.db`,
	Annotations: map[string]string{configAnnotation: "all"},
	Run:         runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := runtimeConfig(terminalSize())

	for ctx.Err() == nil {
		rec := storage.NewRecorder(store, logger, cfg.Difficulty)
		menuResult, err := tui.RunMenu(rec, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size and difficulty changes made in the menu
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		gameCfg := cfg
		gameCfg.Seed = flagSeed
		err = tui.Run(ctx, game, tui.GameOptions{
			Runtime:  gameCfg,
			Recorder: storage.NewRecorder(store, logger, cfg.Difficulty),
			Logger:   logger,
		})
		if err != nil {
			logger.Error("game stopped", "game", menuResult.GameID, "err", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

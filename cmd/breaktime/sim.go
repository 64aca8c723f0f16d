package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaktime/internal/sim"
)

var (
	flagSimSessions int
	flagSimTicks    int
	flagSimWorkers  int
	flagSimQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Let the autoplayer play many sessions",
	Long: `Play seeded headless sessions with the built-in autoplayer and print
score statistics. Useful for checking how difficulty presets and custom
configs change a game.

Session i uses seed --seed + i, so a run is reproducible.

Examples:
  breaktime sim jumper
  breaktime sim stacker --sessions 500 --difficulty hard
  breaktime sim jumper --config ./my-jumper.yaml --ticks 50000`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{configAnnotation: "arg"},
	Run:         runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimSessions, "sessions", 100, "Number of sessions to play")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 20000, "Tick limit per session")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel sessions (0 = number of CPUs)")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
}

func runSim(_ *cobra.Command, args []string) {
	opts := sim.DefaultOptions(args[0])
	opts.Sessions = flagSimSessions
	opts.MaxTicks = flagSimTicks
	opts.Workers = flagSimWorkers
	opts.Difficulty = flagDifficulty
	opts.ConfigPath = flagConfig
	if flagSeed != 0 {
		opts.Seed = flagSeed
	}
	if !flagSimQuiet {
		opts.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := sim.Run(ctx, opts)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "Interrupted.")
		os.Exit(130)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.String())
}

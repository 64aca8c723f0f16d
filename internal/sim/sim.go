// Package sim plays many headless sessions of a game with its built-in
// autoplayer and summarizes the scores.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/registry"
)

// ErrNoBot is returned for games without a built-in autoplayer.
var ErrNoBot = errors.New("sim: no autoplayer for game")

// Options configures a batch run.
type Options struct {
	Game       string
	Sessions   int
	MaxTicks   int   // per session; a session still running at the cap is cut off
	Seed       int64 // session i uses Seed+i
	Difficulty string
	ConfigPath string
	Workers    int       // defaults to GOMAXPROCS
	Progress   io.Writer // progress bar sink; nil disables it
}

// DefaultOptions returns options for a quick run.
func DefaultOptions(game string) Options {
	return Options{
		Game:     game,
		Sessions: 100,
		MaxTicks: 20000,
		Seed:     1,
	}
}

// Result is the outcome of one session.
type Result struct {
	Seed     int64
	Score    int
	Level    int
	Ticks    int
	GameOver bool // false if the session hit MaxTicks
}

// Run plays opts.Sessions sessions and reports on them. Results are in seed
// order regardless of worker scheduling.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Sessions < 1 {
		return Report{}, fmt.Errorf("sim: sessions must be positive, got %d", opts.Sessions)
	}
	if opts.MaxTicks < 1 {
		opts.MaxTicks = DefaultOptions(opts.Game).MaxTicks
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	first, err := registry.Create(opts.Game)
	if err != nil {
		return Report{}, fmt.Errorf("sim: %w", err)
	}
	first.Reset(sessionConfig(opts, opts.Seed))
	if err := registry.ConfigError(first); err != nil {
		return Report{}, fmt.Errorf("sim: %w", err)
	}
	if NewBot(first) == nil {
		return Report{}, fmt.Errorf("%w %q", ErrNoBot, opts.Game)
	}

	bar := pb.New(opts.Sessions)
	if opts.Progress != nil {
		bar.SetWriter(opts.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()
	start := time.Now()

	results := make([]Result, opts.Sessions)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(opts.Workers, opts.Sessions) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = playSession(opts, opts.Seed+int64(i))
				bar.Increment()
			}
		}()
	}

feed:
	for i := range opts.Sessions {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	return NewReport(opts.Game, results, time.Since(start)), nil
}

func sessionConfig(opts Options, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		Seed:       seed,
		ConfigPath: opts.ConfigPath,
		Difficulty: opts.Difficulty,
	}
}

// playSession runs one seeded session to game over or the tick cap.
func playSession(opts Options, seed int64) Result {
	// The game was created once in Run, so Create cannot fail here.
	g, _ := registry.Create(opts.Game)
	g.Reset(sessionConfig(opts, seed))
	bot := NewBot(g)

	first := core.NewInputFrame()
	if h, ok := g.(registry.ActionHandler); ok {
		h.HandleAction(core.ActionConfirm)
	} else {
		first.Set(core.ActionConfirm)
	}
	g.Step(first)

	res := Result{Seed: seed, Ticks: 1}
	for res.Ticks < opts.MaxTicks && !g.State().GameOver {
		g.Step(bot.Act())
		res.Ticks++
	}

	st := g.State()
	res.Score = st.Score
	res.Level = st.Level
	res.GameOver = st.GameOver
	return res
}

package sim

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/breaktime/internal/config"
	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/registry"
)

type idleGame struct{}

func (idleGame) ID() string                           { return "idle" }
func (idleGame) Title() string                        { return "Idle" }
func (idleGame) Reset(core.RuntimeConfig)             {}
func (idleGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (idleGame) Render(*core.Screen)                  {}
func (idleGame) State() core.GameState                { return core.GameState{} }

func init() {
	registry.Register("idle", func() registry.Game { return idleGame{} })
}

func TestRunJumper(t *testing.T) {
	opts := DefaultOptions("jumper")
	opts.Sessions = 4
	opts.MaxTicks = 3000
	opts.Workers = 2

	rep, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, rep.Results, 4)
	for i, res := range rep.Results {
		assert.Equal(t, int64(1+i), res.Seed, "results must be in seed order")
		assert.GreaterOrEqual(t, res.Score, 0)
		assert.LessOrEqual(t, res.Ticks, 3000)
	}
	assert.Positive(t, rep.Max, "the autoplayer should climb")
}

func TestRunIsDeterministic(t *testing.T) {
	opts := DefaultOptions("stacker")
	opts.Sessions = 3
	opts.MaxTicks = 400

	a, err := Run(context.Background(), opts)
	require.NoError(t, err)
	opts.Workers = 1
	b, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, a.Results, b.Results)
}

func TestStackerBotClearsLines(t *testing.T) {
	opts := DefaultOptions("stacker")
	opts.Sessions = 1
	opts.MaxTicks = 1500

	rep, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Positive(t, rep.Results[0].Score)
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), Options{Game: "nope", Sessions: 1})
	assert.ErrorIs(t, err, registry.ErrUnknownGame)

	_, err = Run(context.Background(), Options{Game: "idle", Sessions: 1})
	assert.ErrorIs(t, err, ErrNoBot)

	_, err = Run(context.Background(), Options{Game: "jumper"})
	assert.Error(t, err)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  lines_per_level: 0\n"), 0o600))

	opts := DefaultOptions("stacker")
	opts.Sessions = 1
	opts.ConfigPath = path

	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Game: "jumper", Sessions: 50, MaxTicks: 100})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrappedDelta(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{10, 50, 40},
		{50, 10, -40},
		{10, 400, -40},
		{400, 10, 40},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, wrappedDelta(tc.a, tc.b, 430), 1e-9, "wrappedDelta(%v, %v)", tc.a, tc.b)
	}
}

func TestNewReport(t *testing.T) {
	results := []Result{
		{Score: 0, Ticks: 10, GameOver: true},
		{Score: 10, Ticks: 20, GameOver: true},
		{Score: 20, Ticks: 30, GameOver: true},
		{Score: 1000, Ticks: 40},
	}

	r := NewReport("jumper", results, time.Second)

	assert.Equal(t, 4, r.Sessions)
	assert.Equal(t, 3, r.Finished)
	assert.Equal(t, 0, r.Min)
	assert.Equal(t, 1000, r.Max)
	assert.InDelta(t, 257.5, r.Mean, 1e-9)
	assert.InDelta(t, 25.0, r.MeanTicks, 1e-9)
	assert.Equal(t, 100, r.BucketWidth)
	assert.Equal(t, []Bucket{{Low: 0, Count: 3}, {Low: 1000, Count: 1}}, r.Histogram)

	out := r.String()
	assert.Contains(t, out, "Simulation")
	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, "Score histogram")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.True(t, strings.HasPrefix(line, "+") || strings.HasPrefix(line, "|"), "line %q", line)
	}
}

func TestNewReportSingle(t *testing.T) {
	r := NewReport("stacker", []Result{{Score: 300, GameOver: true}}, 0)
	assert.Zero(t, r.StdDev)
	assert.Equal(t, 1, r.BucketWidth)
	assert.Equal(t, []Bucket{{Low: 300, Count: 1}}, r.Histogram)
}

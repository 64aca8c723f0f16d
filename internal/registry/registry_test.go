package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/breaktime/internal/core"
)

type fakeGame struct {
	id       string
	interval time.Duration
}

func (g *fakeGame) ID() string { return g.id }
func (g *fakeGame) Title() string { return "Fake " + g.id }
func (g *fakeGame) Reset(core.RuntimeConfig) {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen) {}
func (g *fakeGame) State() core.GameState { return core.GameState{} }

type pacedGame struct {
	fakeGame
}

func (g *pacedGame) TickInterval() time.Duration { return g.interval }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_fake", func() Game { return &fakeGame{id: "test_fake"} })

	if !Exists("test_fake") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("test_fake")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test_fake" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "test_fake" {
			found = true
			if info.Title != "Fake test_fake" {
				t.Errorf("Title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() should include the registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does_not_exist")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return &fakeGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_dup", func() Game { return &fakeGame{id: "test_dup"} })
}

func TestInterval(t *testing.T) {
	if got := Interval(&fakeGame{}, 50); got != 20*time.Millisecond {
		t.Errorf("fixed rate interval = %v, expected 20ms", got)
	}
	if got := Interval(&fakeGame{}, 0); got != time.Second/60 {
		t.Errorf("zero rate should fall back to 60Hz, got %v", got)
	}
	paced := &pacedGame{fakeGame{interval: 700 * time.Millisecond}}
	if got := Interval(paced, 60); got != 700*time.Millisecond {
		t.Errorf("paced interval = %v, expected 700ms", got)
	}
}

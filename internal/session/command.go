package session

import (
	"time"

	"github.com/vovakirdan/breaktime/internal/core"
)

type commandKind int

const (
	cmdTrigger  commandKind = iota // edge-triggered action
	cmdPress                       // start holding until released
	cmdPressFor                    // hold that expires unless renewed
	cmdRelease                     // stop holding
	cmdResize                      // change the render buffer size
)

func (k commandKind) String() string {
	switch k {
	case cmdTrigger:
		return "trigger"
	case cmdPress:
		return "press"
	case cmdPressFor:
		return "press-for"
	case cmdRelease:
		return "release"
	case cmdResize:
		return "resize"
	default:
		return "unknown"
	}
}

// command is one input delivered to the runner goroutine.
type command struct {
	kind   commandKind
	action core.Action
	hold   time.Duration
	width  int
	height int
}

// Frame is one rendered view of the game, published after every tick and
// every applied command.
type Frame struct {
	Tick  uint64
	View  string
	State core.GameState
}

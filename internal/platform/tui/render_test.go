package tui

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/breaktime/internal/core"
)

var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColor(3, 0, "xy", core.ColorRed)
	s.DrawText(0, 1, "界z")

	out := sgr.ReplaceAllString(RenderScreen(s), "")

	assert.Equal(t, "ab xy \n界z   ", out)
}

func TestRenderScreenPlainWhenUncolored(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.DrawText(0, 0, "ok")

	assert.Equal(t, s.String(), RenderScreen(s))
}

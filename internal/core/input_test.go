package core

import "testing"

func TestInputFrameClearKeepsHeld(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Hold(ActionLeft)

	f.Clear()

	if f.Has(ActionPause) {
		t.Error("Clear should drop edge-triggered actions")
	}
	if !f.IsHeld(ActionLeft) {
		t.Error("Clear should keep held actions")
	}

	f.Release(ActionLeft)
	if f.IsHeld(ActionLeft) {
		t.Error("Release should drop the held action")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.Hold(ActionRight)

	c := f.Clone()
	f.Clear()
	f.Release(ActionRight)

	if !c.Has(ActionJump) || !c.IsHeld(ActionRight) {
		t.Error("clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) || f.IsHeld(ActionLeft) {
		t.Error("zero frame should report nothing")
	}
	f.Set(ActionJump)
	f.Hold(ActionLeft)
	if !f.Has(ActionJump) || !f.IsHeld(ActionLeft) {
		t.Error("zero frame should lazily allocate")
	}
}

package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := range 100 {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(7)
	seen := make(map[int]bool)
	for range 1000 {
		n := r.Intn(7)
		if n < 0 || n >= 7 {
			t.Fatalf("Intn(7) = %d out of range", n)
		}
		seen[n] = true

		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v out of range", f)
		}
	}
	if len(seen) != 7 {
		t.Errorf("Intn(7) hit %d distinct values in 1000 draws, expected all 7", len(seen))
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}

func TestRNGStateRoundTrip(t *testing.T) {
	r := NewRNG(0)
	r.Next()
	saved := r.State()
	want := r.Next()

	r.SetState(saved)
	if got := r.Next(); got != want {
		t.Errorf("restored RNG produced %d, expected %d", got, want)
	}
}

func TestTriggeredOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Set(ActionLeft)
	f.Set(ActionUp)
	f.Hold(ActionRight)

	got := f.Triggered()
	want := []Action{ActionUp, ActionLeft, ActionPause}
	if len(got) != len(want) {
		t.Fatalf("Triggered() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Triggered()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

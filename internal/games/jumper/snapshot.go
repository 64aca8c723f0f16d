package jumper

import "math"

// Snapshot contains the complete game state for determinism checks and the
// autoplayer. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	State    string
	Paused   bool
	Score    int
	Player   Player
	CameraY  float64
	NextID   uint32
	Bounces  int
	RNGState uint64

	// Platforms flattened as (ID, X, Y) triples in creation order.
	PlatformCount int
	PlatformData  []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	data := make([]float64, 0, len(g.platforms)*3)
	for _, p := range g.platforms {
		data = append(data, float64(p.ID), p.X, p.Y)
	}
	return Snapshot{
		Tick:          g.tick,
		State:         g.state,
		Paused:        g.paused,
		Score:         g.score,
		Player:        g.player,
		CameraY:       g.camera.Y,
		NextID:        g.nextID,
		Bounces:       g.bounces,
		RNGState:      g.rng.State(),
		PlatformCount: len(g.platforms),
		PlatformData:  data,
	}
}

// Restore loads a snapshot. Configuration and the high-score hook are left as
// set by Reset.
func (g *Game) Restore(snap Snapshot) {
	g.tick = snap.Tick
	g.state = snap.State
	g.paused = snap.Paused
	g.score = snap.Score
	g.player = snap.Player
	g.camera = Camera{Y: snap.CameraY}
	g.nextID = snap.NextID
	g.bounces = snap.Bounces
	g.rng.SetState(snap.RNGState)

	g.platforms = make([]Platform, 0, snap.PlatformCount)
	for i := 0; i+2 < len(snap.PlatformData); i += 3 {
		g.platforms = append(g.platforms, Platform{
			ID: uint32(snap.PlatformData[i]),
			X:  snap.PlatformData[i+1],
			Y:  snap.PlatformData[i+2],
		})
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Player.X)
	h = h*31 + math.Float64bits(snap.Player.Y)
	h = h*31 + math.Float64bits(snap.Player.VX)
	h = h*31 + math.Float64bits(snap.Player.VY)
	h = h*31 + math.Float64bits(snap.CameraY)
	h = h*31 + uint64(snap.NextID)
	h = h*31 + uint64(snap.PlatformCount) //#nosec G115 -- hash computation
	h = h*31 + snap.RNGState

	for _, v := range snap.PlatformData {
		h = h*31 + math.Float64bits(v)
	}
	for _, r := range snap.State {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	return h
}

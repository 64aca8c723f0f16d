package core

// RNG is a deterministic pseudo-random number generator (64-bit LCG).
// Its whole state is one word, so games can snapshot and restore it.
type RNG struct {
	state uint64
}

// NewRNG creates a generator for the given seed. Seed 0 is mapped to 1.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are far better distributed than the low ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// State returns the internal state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}

// SetState restores a state previously returned by State.
func (r *RNG) SetState(s uint64) {
	r.state = s
}

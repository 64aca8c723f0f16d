package stacker

// Snapshot contains the complete game state for determinism checks and the
// autoplayer. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	State    string
	Score    int
	Lines    int
	Level    int
	Piece    ActivePiece
	Next     PieceType
	Width    int
	Height   int
	Cells    []PieceType // row-major, Width*Height
	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	cells := make([]PieceType, len(g.board.cells))
	copy(cells, g.board.cells)
	return Snapshot{
		Tick:     g.tick,
		State:    g.state,
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.level,
		Piece:    g.piece,
		Next:     g.next,
		Width:    g.board.Width,
		Height:   g.board.Height,
		Cells:    cells,
		RNGState: g.rng.State(),
	}
}

// Restore loads a snapshot taken from a game with the same board size.
// Configuration and the high-score hook are left as set by Reset.
func (g *Game) Restore(snap Snapshot) {
	g.tick = snap.Tick
	g.state = snap.State
	g.score = snap.Score
	g.lines = snap.Lines
	g.level = snap.Level
	g.piece = snap.Piece
	g.next = snap.Next
	g.rng.SetState(snap.RNGState)

	g.board = NewBoard(snap.Width, snap.Height)
	copy(g.board.cells, snap.Cells)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lines) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Piece.Type)
	h = h*31 + uint64(snap.Piece.Rotation) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Piece.X)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Piece.Y)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Next)
	h = h*31 + snap.RNGState

	for _, c := range snap.Cells {
		h = h*31 + uint64(c)
	}
	for _, r := range snap.State {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	return h
}

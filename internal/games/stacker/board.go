package stacker

// Board is the fixed grid of settled cells, row-major with y growing down.
type Board struct {
	Width  int
	Height int
	cells  []PieceType
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	return &Board{
		Width:  width,
		Height: height,
		cells:  make([]PieceType, width*height),
	}
}

// At returns the cell at (x, y), or PieceNone when out of bounds.
func (b *Board) At(x, y int) PieceType {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return PieceNone
	}
	return b.cells[y*b.Width+x]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (b *Board) Set(x, y int, t PieceType) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.cells[y*b.Width+x] = t
}

// IsValid reports whether piece t at rotation rot anchored at (x, y) fits:
// every occupied cell must lie in [0, Width) horizontally and above the floor,
// and must not overlap a settled cell. Rows above the top are never occupied.
func (b *Board) IsValid(t PieceType, x, y, rot int) bool {
	s := t.Shape(rot)
	if s == nil {
		return false
	}
	for r := range s.Height() {
		for c := range s.Width() {
			if !s.Filled(c, r) {
				continue
			}
			bx, by := x+c, y+r
			if bx < 0 || bx >= b.Width || by >= b.Height {
				return false
			}
			if by >= 0 && b.cells[by*b.Width+bx] != PieceNone {
				return false
			}
		}
	}
	return true
}

// Stamp writes the piece into the grid. Cells above the top row are dropped.
func (b *Board) Stamp(t PieceType, x, y, rot int) {
	s := t.Shape(rot)
	for r := range s.Height() {
		for c := range s.Width() {
			if s.Filled(c, r) && y+r >= 0 {
				b.Set(x+c, y+r, t)
			}
		}
	}
}

// ClearLines removes every full row, shifts the rows above it down and
// inserts empty rows at the top. It returns the number of rows removed.
func (b *Board) ClearLines() int {
	write := b.Height - 1
	for read := b.Height - 1; read >= 0; read-- {
		if b.rowFull(read) {
			continue
		}
		if write != read {
			copy(b.row(write), b.row(read))
		}
		write--
	}

	cleared := write + 1
	for y := range cleared {
		clear(b.row(y))
	}
	return cleared
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for _, c := range b.cells {
		if c != PieceNone {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := &Board{Width: b.Width, Height: b.Height, cells: make([]PieceType, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Reset empties every cell.
func (b *Board) Reset() {
	clear(b.cells)
}

// ColumnHeight returns the height of the stack in column x (0 when empty).
func (b *Board) ColumnHeight(x int) int {
	for y := range b.Height {
		if b.At(x, y) != PieceNone {
			return b.Height - y
		}
	}
	return 0
}

// Holes counts empty cells that have a settled cell somewhere above them.
func (b *Board) Holes() int {
	holes := 0
	for x := range b.Width {
		covered := false
		for y := range b.Height {
			if b.At(x, y) != PieceNone {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

func (b *Board) row(y int) []PieceType {
	return b.cells[y*b.Width : (y+1)*b.Width]
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.row(y) {
		if c == PieceNone {
			return false
		}
	}
	return true
}

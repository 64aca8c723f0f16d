package stacker

import "github.com/vovakirdan/breaktime/internal/core"

// PieceType identifies one of the seven tetrominoes. The zero value marks an
// empty board cell.
type PieceType uint8

const (
	PieceNone PieceType = iota
	PieceI
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceTypes lists the spawnable pieces in table order.
var PieceTypes = [...]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

// Shape is one rotation state: rows top to bottom, 1 marks an occupied cell.
type Shape [][]uint8

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Filled reports whether the cell at column c, row r is occupied.
func (s Shape) Filled(c, r int) bool {
	return s[r][c] != 0
}

// Rotation tables, clockwise. Rotation i+1 is reached from i by Rotate.
var shapes = [...][]Shape{
	PieceI: {
		{{1, 1, 1, 1}},
		{{1}, {1}, {1}, {1}},
	},
	PieceO: {
		{{1, 1}, {1, 1}},
	},
	PieceT: {
		{{0, 1, 0}, {1, 1, 1}},
		{{1, 0}, {1, 1}, {1, 0}},
		{{1, 1, 1}, {0, 1, 0}},
		{{0, 1}, {1, 1}, {0, 1}},
	},
	PieceS: {
		{{0, 1, 1}, {1, 1, 0}},
		{{1, 0}, {1, 1}, {0, 1}},
	},
	PieceZ: {
		{{1, 1, 0}, {0, 1, 1}},
		{{0, 1}, {1, 1}, {1, 0}},
	},
	PieceJ: {
		{{1, 0, 0}, {1, 1, 1}},
		{{1, 1}, {1, 0}, {1, 0}},
		{{1, 1, 1}, {0, 0, 1}},
		{{0, 1}, {0, 1}, {1, 1}},
	},
	PieceL: {
		{{0, 0, 1}, {1, 1, 1}},
		{{1, 0}, {1, 0}, {1, 1}},
		{{1, 1, 1}, {1, 0, 0}},
		{{1, 1}, {0, 1}, {0, 1}},
	},
}

// Rotations returns the number of distinct rotation states for t.
func (t PieceType) Rotations() int {
	if t == PieceNone || int(t) >= len(shapes) {
		return 0
	}
	return len(shapes[t])
}

// Shape returns the occupancy matrix for rotation rot (taken modulo the
// rotation count).
func (t PieceType) Shape(rot int) Shape {
	n := t.Rotations()
	if n == 0 {
		return nil
	}
	return shapes[t][((rot%n)+n)%n]
}

// Color returns the display color for cells of this piece.
func (t PieceType) Color() core.Color {
	switch t {
	case PieceI:
		return core.ColorCyan
	case PieceO:
		return core.ColorYellow
	case PieceT:
		return core.ColorMagenta
	case PieceS:
		return core.ColorGreen
	case PieceZ:
		return core.ColorRed
	case PieceJ:
		return core.ColorBlue
	case PieceL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// String returns the single-letter piece name.
func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	default:
		return "."
	}
}

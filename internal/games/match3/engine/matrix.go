// Package engine implements the rules of a tile-matching puzzle: match and
// move search over immutable board snapshots, the selection/swap/cascade
// state machine, and the timed session wrapped around it.
//
// The package has no presentation dependencies. Visual effects are modelled
// as blocking Effects.Play calls so that a host can animate each step, and
// every search function works on a Matrix value rather than the live board.
package engine

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// TileType identifies the kind of a tile. Values are in [0, Config.TileTypes).
type TileType uint8

// Coord is a board position. X grows to the right, Y grows downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Adjacent reports whether two coordinates are Manhattan neighbours.
func (c Coord) Adjacent(other Coord) bool {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Compare orders coordinates row-major: by Y, then by X. It returns -1, 0
// or +1 and suits slices.SortFunc.
func (c Coord) Compare(other Coord) int {
	if c.Y != other.Y {
		return cmp.Compare(c.Y, other.Y)
	}
	return cmp.Compare(c.X, other.X)
}

// Less reports whether c comes before other in row-major order.
func (c Coord) Less(other Coord) bool {
	return c.Compare(other) < 0
}

// ErrRaggedRows is returned when matrix rows differ in length.
var ErrRaggedRows = errors.New("engine: matrix rows must all have the same length")

// Matrix is an immutable snapshot of tile types over a rectangular grid.
// Cells are stored row-major: index = y*W + x.
type Matrix struct {
	w     int
	h     int
	cells []TileType
}

// NewMatrix builds a matrix from rows (rows[y][x]). The input is copied.
func NewMatrix(rows [][]TileType) (Matrix, error) {
	h := len(rows)
	if h == 0 {
		return Matrix{}, nil
	}
	w := len(rows[0])
	cells := make([]TileType, 0, w*h)
	for y, row := range rows {
		if len(row) != w {
			return Matrix{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, y, len(row), w)
		}
		cells = append(cells, row...)
	}
	return Matrix{w: w, h: h, cells: cells}, nil
}

// MustMatrix is like NewMatrix but panics on ragged input.
// Intended for fixtures and tests.
func MustMatrix(rows [][]TileType) Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// matrixFromCells wraps a copy of a row-major cell slice.
func matrixFromCells(w, h int, cells []TileType) Matrix {
	cp := make([]TileType, len(cells))
	copy(cp, cells)
	return Matrix{w: w, h: h, cells: cp}
}

// Width returns the number of columns.
func (m Matrix) Width() int {
	return m.w
}

// Height returns the number of rows.
func (m Matrix) Height() int {
	return m.h
}

// Len returns the number of cells.
func (m Matrix) Len() int {
	return len(m.cells)
}

// InBounds returns true if the coordinate lies on the grid.
func (m Matrix) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < m.w && c.Y >= 0 && c.Y < m.h
}

// At returns the tile type at c. It panics if c is out of bounds.
func (m Matrix) At(c Coord) TileType {
	if !m.InBounds(c) {
		panic(fmt.Sprintf("engine: coordinate %v outside %dx%d matrix", c, m.w, m.h))
	}
	return m.cells[c.Y*m.w+c.X]
}

// Swapped returns a copy of the matrix with the tiles at a and b exchanged.
func (m Matrix) Swapped(a, b Coord) Matrix {
	out := matrixFromCells(m.w, m.h, m.cells)
	ia, ib := a.Y*m.w+a.X, b.Y*m.w+b.X
	out.cells[ia], out.cells[ib] = out.cells[ib], out.cells[ia]
	return out
}

// Rows returns the matrix as a freshly allocated [y][x] slice.
func (m Matrix) Rows() [][]TileType {
	rows := make([][]TileType, m.h)
	for y := range m.h {
		rows[y] = make([]TileType, m.w)
		copy(rows[y], m.cells[y*m.w:(y+1)*m.w])
	}
	return rows
}

// Equal returns true if both matrices have the same dimensions and contents.
func (m Matrix) Equal(other Matrix) bool {
	if m.w != other.w || m.h != other.h {
		return false
	}
	for i, t := range m.cells {
		if other.cells[i] != t {
			return false
		}
	}
	return true
}

// String renders the matrix one row per line, tiles as digits/letters.
func (m Matrix) String() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	var sb strings.Builder
	sb.Grow(m.w*m.h + m.h)
	for y := range m.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range m.w {
			t := int(m.cells[y*m.w+x])
			if t < len(alphabet) {
				sb.WriteByte(alphabet[t])
			} else {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}

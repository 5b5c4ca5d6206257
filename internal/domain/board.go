package domain

import "fmt"

// Board is a value type. Row 0 is the top row, row Rows-1 the bottom one.
// Operations that place a disc return a new Board and never touch the receiver.
type Board struct {
	geometry Geometry
	cells    []Side
}

func NewBoard(g Geometry) Board {
	return Board{
		geometry: g,
		cells:    make([]Side, g.Rows*g.Columns),
	}
}

// NewDefaultBoard returns an empty 6x7 board.
func NewDefaultBoard() Board {
	return NewBoard(DefaultGeometry)
}

// BoardFromGrid builds a board from its wire form (rows top to bottom, values 0/1/-1).
// The grid must match g and be gravity-consistent.
func BoardFromGrid(g Geometry, grid [][]int) (Board, error) {
	if len(grid) != g.Rows {
		return Board{}, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, g.Rows, len(grid))
	}

	b := NewBoard(g)
	for r, row := range grid {
		if len(row) != g.Columns {
			return Board{}, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidBoard, r, len(row), g.Columns)
		}
		for c, v := range row {
			if v < int(SideB) || v > int(SideA) {
				return Board{}, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, r, c, v)
			}
			b.cells[b.index(r, c)] = Side(v)
		}
	}

	// occupied cells must sit on top of each other from the bottom row up
	for c := 0; c < g.Columns; c++ {
		for r := 0; r < g.Rows-1; r++ {
			if b.At(r, c) != Empty && b.At(r+1, c) == Empty {
				return Board{}, fmt.Errorf("%w: floating disc at (%d,%d)", ErrInvalidBoard, r, c)
			}
		}
	}
	return b, nil
}

func (b Board) Geometry() Geometry {
	return b.geometry
}

func (b Board) Rows() int {
	return b.geometry.Rows
}

func (b Board) Columns() int {
	return b.geometry.Columns
}

func (b Board) index(row, col int) int {
	return row*b.geometry.Columns + col
}

// At returns the cell at (row, col). Both must be in range.
func (b Board) At(row, col int) Side {
	return b.cells[b.index(row, col)]
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.geometry.Rows && col >= 0 && col < b.geometry.Columns
}

// IsColumnOpen reports whether a disc can still be dropped into col.
func (b Board) IsColumnOpen(col int) bool {
	if col < 0 || col >= b.geometry.Columns {
		return false
	}
	return b.At(0, col) == Empty
}

// LowestEmptyRow returns the row a disc dropped into col would land on, or -1.
func (b Board) LowestEmptyRow(col int) int {
	if col < 0 || col >= b.geometry.Columns {
		return -1
	}
	for row := b.geometry.Rows - 1; row >= 0; row-- {
		if b.At(row, col) == Empty {
			return row
		}
	}
	return -1
}

// DropDisc returns a copy of the board with side's disc in the lowest empty row of col.
// The caller must check IsColumnOpen first; for a closed column the copy is unchanged.
func (b Board) DropDisc(col int, side Side) Board {
	next := b.clone()
	if row := b.LowestEmptyRow(col); row >= 0 {
		next.cells[next.index(row, col)] = side
	}
	return next
}

// LegalColumns lists the open columns in ascending order.
func (b Board) LegalColumns() []int {
	cols := make([]int, 0, b.geometry.Columns)
	for col := 0; col < b.geometry.Columns; col++ {
		if b.IsColumnOpen(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

func (b Board) IsFull() bool {
	for col := 0; col < b.geometry.Columns; col++ {
		if b.IsColumnOpen(col) {
			return false
		}
	}
	return true
}

// CountDiscs counts side's discs on the whole board.
func (b Board) CountDiscs(side Side) int {
	n := 0
	for _, s := range b.cells {
		if s == side {
			n++
		}
	}
	return n
}

// Grid converts the board into its wire form.
func (b Board) Grid() [][]int {
	grid := make([][]int, b.geometry.Rows)
	for r := range grid {
		grid[r] = make([]int, b.geometry.Columns)
		for c := range grid[r] {
			grid[r][c] = int(b.At(r, c))
		}
	}
	return grid
}

// Equal reports whether both boards have the same geometry and cells.
func (b Board) Equal(other Board) bool {
	if b.geometry != other.geometry || len(b.cells) != len(other.cells) {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) clone() Board {
	cells := make([]Side, len(b.cells))
	copy(cells, b.cells)
	return Board{geometry: b.geometry, cells: cells}
}

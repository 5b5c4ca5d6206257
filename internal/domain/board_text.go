package domain

import (
	"fmt"
	"strings"
)

// ParseBoard reads a board drawn as text, top row first: 'x' is SideA, 'o' is SideB and
// '.' is empty. All lines must have the same length.
func ParseBoard(lines ...string) (Board, error) {
	if len(lines) == 0 {
		return Board{}, fmt.Errorf("%w: no rows", ErrInvalidBoard)
	}

	g := Geometry{Rows: len(lines), Columns: len(lines[0])}
	grid := make([][]int, g.Rows)
	for r, line := range lines {
		if len(line) != g.Columns {
			return Board{}, fmt.Errorf("%w: row %d has length %d, expected %d", ErrInvalidBoard, r, len(line), g.Columns)
		}
		grid[r] = make([]int, g.Columns)
		for c, ch := range line {
			switch ch {
			case 'x':
				grid[r][c] = int(SideA)
			case 'o':
				grid[r][c] = int(SideB)
			case '.':
			default:
				return Board{}, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrInvalidBoard, ch, r, c)
			}
		}
	}
	return BoardFromGrid(g, grid)
}

// String draws the board in the ParseBoard notation, one row per line.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Columns(); c++ {
			switch b.At(r, c) {
			case SideA:
				sb.WriteByte('x')
			case SideB:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		if r < b.Rows()-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

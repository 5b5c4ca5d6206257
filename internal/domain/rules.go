package domain

// Window is a run of ToWin consecutive cells along one scan direction.
type Window [ToWin]Side

// scan directions as (row step, column step); ↗ climbs towards row 0
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{-1, 1}, // diagonal, positive slope
	{1, 1},  // diagonal, negative slope
}

// ForEachWindow calls fn for every window on the board, horizontal first, then vertical,
// then both diagonals. Iteration stops early when fn returns false.
func ForEachWindow(b Board, fn func(w Window) bool) {
	rows, cols := b.Rows(), b.Columns()
	for _, d := range directions {
		dr, dc := d[0], d[1]
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				endRow, endCol := r+dr*(ToWin-1), c+dc*(ToWin-1)
				if !b.InBounds(endRow, endCol) {
					continue
				}
				var w Window
				for i := 0; i < ToWin; i++ {
					w[i] = b.At(r+dr*i, c+dc*i)
				}
				if !fn(w) {
					return
				}
			}
		}
	}
}

// HasFourInARow reports whether side owns every cell of at least one window.
func HasFourInARow(b Board, side Side) bool {
	found := false
	ForEachWindow(b, func(w Window) bool {
		for _, cell := range w {
			if cell != side {
				return true
			}
		}
		found = true
		return false
	})
	return found
}

// Winner returns the side holding a four-in-a-row, or Empty.
func Winner(b Board) Side {
	if HasFourInARow(b, SideA) {
		return SideA
	}
	if HasFourInARow(b, SideB) {
		return SideB
	}
	return Empty
}

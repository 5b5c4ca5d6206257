package bot

import (
	"math"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

// NoColumn marks a SearchResult computed at a leaf, where no move is chosen.
const NoColumn = -1

// SearchResult is the move picked at a node and the node's minimax value.
// Proven wins and losses are +Inf and -Inf.
type SearchResult struct {
	Column int
	Value  float64
}

// HasMove reports whether the result carries a column to play.
func (r SearchResult) HasMove() bool {
	return r.Column != NoColumn
}

// SearchRoot runs Search from the root with a full (-Inf, +Inf) window, side to move.
func SearchRoot(board domain.Board, depth int, side domain.Side) SearchResult {
	return Search(board, depth, math.Inf(-1), math.Inf(1), true, side)
}

// Search implements minimax with alpha-beta pruning. maximizingSide is the side the values
// are computed for; maximizing tells whether that side moves at this node.
func Search(board domain.Board, depth int, alpha, beta float64, maximizing bool, maximizingSide domain.Side) SearchResult {
	minimizingSide := maximizingSide.Opponent()

	// Terminal conditions
	if domain.HasFourInARow(board, maximizingSide) {
		return SearchResult{Column: NoColumn, Value: math.Inf(1)}
	}
	if domain.HasFourInARow(board, minimizingSide) {
		return SearchResult{Column: NoColumn, Value: math.Inf(-1)}
	}
	validColumns := board.LegalColumns()
	if len(validColumns) == 0 {
		return SearchResult{Column: NoColumn, Value: 0}
	}

	if depth == 0 {
		return SearchResult{Column: NoColumn, Value: float64(Evaluate(board, maximizingSide))}
	}

	// the first column stands in until a child beats it; it is what gets returned when
	// every child is a proven loss
	bestCol := validColumns[0]

	if maximizing {
		maxEval := math.Inf(-1)
		for _, col := range validColumns {
			child := board.DropDisc(col, maximizingSide)
			eval := Search(child, depth-1, alpha, beta, false, maximizingSide).Value
			if eval > maxEval {
				maxEval = eval
				bestCol = col
			}
			alpha = math.Max(alpha, maxEval)
			if alpha >= beta {
				break // Beta cutoff
			}
		}
		return SearchResult{Column: bestCol, Value: maxEval}
	}

	minEval := math.Inf(1)
	for _, col := range validColumns {
		child := board.DropDisc(col, minimizingSide)
		eval := Search(child, depth-1, alpha, beta, true, maximizingSide).Value
		if eval < minEval {
			minEval = eval
			bestCol = col
		}
		beta = math.Min(beta, minEval)
		if alpha >= beta {
			break // Alpha cutoff
		}
	}
	return SearchResult{Column: bestCol, Value: minEval}
}

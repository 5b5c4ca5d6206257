package bot

import (
	"github.com/iamasit07/connect4-minimax/internal/domain"
)

// Window weights. These are fixed tuning values: changing any of them changes the moves
// the agent picks.
const (
	SCORE_FOUR        = 100
	SCORE_THREE_OPEN  = 10
	SCORE_TWO_OPEN    = 5
	SCORE_ONE_OPEN    = 2
	SCORE_OPP_THREE   = -10
	SCORE_OPP_TWO     = -5
	SCORE_CENTER_DISC = 2
)

// Evaluate scores a non-terminal board from side's point of view: every window of four
// is classified by its disc counts, then each of side's discs in the center column adds
// a flat bonus.
func Evaluate(board domain.Board, side domain.Side) int {
	score := 0

	domain.ForEachWindow(board, func(w domain.Window) bool {
		score += scoreWindow(w, side)
		return true
	})

	center := board.Geometry().CenterColumn()
	for row := 0; row < board.Rows(); row++ {
		if board.At(row, center) == side {
			score += SCORE_CENTER_DISC
		}
	}

	return score
}

// scoreWindow looks a window up in the weight table. Windows holding discs of both
// sides are worth nothing, blocked or not.
func scoreWindow(w domain.Window, side domain.Side) int {
	opponent := side.Opponent()
	own, opp, empty := 0, 0, 0
	for _, cell := range w {
		switch cell {
		case side:
			own++
		case opponent:
			opp++
		default:
			empty++
		}
	}

	switch {
	case own == 4:
		return SCORE_FOUR
	case own == 3 && empty == 1:
		return SCORE_THREE_OPEN
	case own == 2 && empty == 2:
		return SCORE_TWO_OPEN
	case own == 1 && empty == 3:
		return SCORE_ONE_OPEN
	case opp == 3 && empty == 1:
		return SCORE_OPP_THREE
	case opp == 2 && empty == 2:
		return SCORE_OPP_TWO
	}
	return 0
}

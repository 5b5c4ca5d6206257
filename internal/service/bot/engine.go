package bot

import (
	"fmt"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

const (
	ErrNoLegalMove  domain.Error = "no legal move: game is already decided"
	ErrInvalidDepth domain.Error = "search depth must not be negative"
)

// Agent plays one side by searching to a fixed depth.
type Agent struct {
	Side  domain.Side
	Depth int
}

func NewAgent(side domain.Side, depth int) (*Agent, error) {
	if !side.IsPlayer() {
		return nil, domain.ErrInvalidSide
	}
	if depth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	return &Agent{Side: side, Depth: depth}, nil
}

// BestMove searches the board for the agent's side. A board that is already won or full
// has nothing to search and yields ErrNoLegalMove.
func (a *Agent) BestMove(board domain.Board) (SearchResult, error) {
	if domain.Winner(board) != domain.Empty || board.IsFull() {
		return SearchResult{Column: NoColumn}, ErrNoLegalMove
	}
	result := SearchRoot(board, a.Depth, a.Side)
	if a.Depth == 0 {
		// a depth-0 search stops at the root without picking a column
		result.Column = board.LegalColumns()[0]
	}
	return result, nil
}

package bot

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

// plainMinimax is the same search without pruning.
func plainMinimax(board domain.Board, depth int, maximizing bool, side domain.Side) float64 {
	if domain.HasFourInARow(board, side) {
		return math.Inf(1)
	}
	if domain.HasFourInARow(board, side.Opponent()) {
		return math.Inf(-1)
	}
	cols := board.LegalColumns()
	if len(cols) == 0 {
		return 0
	}
	if depth == 0 {
		return float64(Evaluate(board, side))
	}

	if maximizing {
		best := math.Inf(-1)
		for _, col := range cols {
			best = math.Max(best, plainMinimax(board.DropDisc(col, side), depth-1, false, side))
		}
		return best
	}
	best := math.Inf(1)
	for _, col := range cols {
		best = math.Min(best, plainMinimax(board.DropDisc(col, side.Opponent()), depth-1, true, side))
	}
	return best
}

func TestSearchEmptyBoardDepthOnePicksCenter(t *testing.T) {
	result := SearchRoot(domain.NewDefaultBoard(), 1, domain.SideA)
	if result.Column != 3 {
		t.Fatalf("expected center column 3, got %d", result.Column)
	}
	if result.Value != 16 {
		t.Fatalf("expected value 16, got %v", result.Value)
	}
}

func TestSearchTakesImmediateWin(t *testing.T) {
	b := mustParse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		".xxxo.o",
	)
	for depth := 1; depth <= 5; depth++ {
		result := SearchRoot(b, depth, domain.SideA)
		if result.Column != 0 || !math.IsInf(result.Value, 1) {
			t.Fatalf("depth %d: expected column 0 with +Inf, got %d (%v)", depth, result.Column, result.Value)
		}
	}
}

func TestSearchCompletesVerticalLine(t *testing.T) {
	b := mustParse(t,
		".......",
		".......",
		".......",
		".....x.",
		"o....x.",
		"o.o..x.",
	)
	for depth := 1; depth <= 3; depth++ {
		result := SearchRoot(b, depth, domain.SideA)
		if result.Column != 5 || !math.IsInf(result.Value, 1) {
			t.Fatalf("depth %d: expected column 5 with +Inf, got %d (%v)", depth, result.Column, result.Value)
		}
	}
}

func TestSearchCannotPreventDoubleThreat(t *testing.T) {
	b := mustParse(t,
		".......",
		".......",
		".......",
		".......",
		".xx....",
		".ooo..x",
	)
	for depth := 2; depth <= 4; depth++ {
		result := SearchRoot(b, depth, domain.SideA)
		if !math.IsInf(result.Value, -1) {
			t.Fatalf("depth %d: expected -Inf, got %v", depth, result.Value)
		}
		if result.Column != 0 {
			t.Fatalf("depth %d: expected the first legal column, got %d", depth, result.Column)
		}
		for _, col := range b.LegalColumns() {
			child := b.DropDisc(col, domain.SideA)
			v := Search(child, depth-1, math.Inf(-1), math.Inf(1), false, domain.SideA).Value
			if !math.IsInf(v, -1) {
				t.Fatalf("depth %d column %d: expected -Inf, got %v", depth, col, v)
			}
		}
	}
}

func TestSearchFiniteTieKeepsLowestColumn(t *testing.T) {
	// mirror symmetric with the middle column full, so every value appears in a pair of columns
	b := mustParse(t,
		"...o...",
		"...x...",
		"...o...",
		"...x...",
		"...o...",
		"...x...",
	)
	for _, side := range []domain.Side{domain.SideA, domain.SideB} {
		best, bestCols := math.Inf(-1), []int{}
		for _, col := range b.LegalColumns() {
			v := float64(Evaluate(b.DropDisc(col, side), side))
			switch {
			case v > best:
				best, bestCols = v, []int{col}
			case v == best:
				bestCols = append(bestCols, col)
			}
		}
		if len(bestCols) < 2 || math.IsInf(best, 0) {
			t.Fatalf("side %v: fixture must produce a finite tie, got %v at %v", side, best, bestCols)
		}

		result := SearchRoot(b, 1, side)
		if result.Column != bestCols[0] || result.Value != best {
			t.Fatalf("side %v: expected column %d with %v, got %d (%v)", side, bestCols[0], best, result.Column, result.Value)
		}
	}
}

func TestSearchSingleLegalColumn(t *testing.T) {
	b := mustParse(t,
		"oxoxox.",
		"oxoxox.",
		"oxoxox.",
		"xoxoxo.",
		"xoxoxo.",
		"xoxoxo.",
	)
	if domain.Winner(b) != domain.Empty {
		t.Fatalf("fixture must not contain a four in a row")
	}
	for depth := 1; depth <= 6; depth++ {
		for _, side := range []domain.Side{domain.SideA, domain.SideB} {
			if got := SearchRoot(b, depth, side).Column; got != 6 {
				t.Fatalf("depth %d side %v: expected column 6, got %d", depth, side, got)
			}
		}
	}
}

func TestSearchTerminalNodes(t *testing.T) {
	won := mustParse(t,
		".......",
		".......",
		".......",
		".......",
		"ooo....",
		"xxxx...",
	)
	if r := SearchRoot(won, 3, domain.SideA); r.HasMove() || !math.IsInf(r.Value, 1) {
		t.Fatalf("expected +Inf leaf for the winner, got %+v", r)
	}
	if r := SearchRoot(won, 3, domain.SideB); r.HasMove() || !math.IsInf(r.Value, -1) {
		t.Fatalf("expected -Inf leaf for the loser, got %+v", r)
	}

	if r := SearchRoot(domain.NewDefaultBoard(), 0, domain.SideA); r.HasMove() || r.Value != 0 {
		t.Fatalf("depth 0 on an empty board should evaluate to 0 without a move, got %+v", r)
	}
}

func TestSearchDrawOnFullBoard(t *testing.T) {
	full := mustParse(t,
		"oxoxoxo",
		"oxoxoxx",
		"oxoxoxo",
		"xoxoxox",
		"xoxoxoo",
		"xoxoxox",
	)
	r := SearchRoot(full, 4, domain.SideA)
	if r.HasMove() || r.Value != 0 {
		t.Fatalf("expected a draw leaf, got %+v", r)
	}
}

func TestPruningMatchesPlainMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	checked := 0
	for checked < 60 {
		b := domain.NewDefaultBoard()
		side := domain.SideA
		moves := 6 + rng.Intn(15)
		for i := 0; i < moves; i++ {
			cols := b.LegalColumns()
			b = b.DropDisc(cols[rng.Intn(len(cols))], side)
			side = side.Opponent()
			if domain.Winner(b) != domain.Empty {
				break
			}
		}
		if domain.Winner(b) != domain.Empty || b.IsFull() {
			continue
		}

		depth := 1 + checked%4
		for _, s := range []domain.Side{domain.SideA, domain.SideB} {
			pruned := SearchRoot(b, depth, s).Value
			plain := plainMinimax(b, depth, true, s)
			if pruned != plain {
				t.Fatalf("depth %d side %v: pruned %v != plain %v on\n%s", depth, s, pruned, plain, b)
			}
		}
		checked++
	}
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	b := mustParse(t,
		".......",
		".......",
		".......",
		"...o...",
		"..xx...",
		".oxox..",
	)
	before := b.String()
	SearchRoot(b, 4, domain.SideB)
	if b.String() != before {
		t.Fatalf("search changed the input board")
	}
}

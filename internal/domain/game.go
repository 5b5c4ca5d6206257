package domain

type Game struct {
	Board         Board
	CurrentPlayer Side
	Status        GameStatus
	Winner        Side
	MoveCount     int
	Moves         []int
}

func NewGame(g Geometry, first Side) *Game {
	if !first.IsPlayer() {
		first = SideA
	}
	return &Game{
		Board:         NewBoard(g),
		CurrentPlayer: first,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

// MakeMove drops player's disc into column and returns the row it landed on.
func (g *Game) MakeMove(player Side, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}
	if column < 0 || column >= g.Board.Columns() {
		return -1, ErrColumnOutOfRange
	}
	if !g.Board.IsColumnOpen(column) {
		return -1, ErrColumnFull
	}

	row := g.Board.LowestEmptyRow(column)
	g.Board = g.Board.DropDisc(column, player)
	g.MoveCount++
	g.Moves = append(g.Moves, column)

	if HasFourInARow(g.Board, player) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

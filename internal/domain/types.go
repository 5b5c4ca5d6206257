package domain

import "fmt"

// Side identifies the owner of a cell. Empty is the neutral marker and never a player.
type Side int8

const (
	Empty Side = 0
	SideA Side = 1
	SideB Side = -1
)

// IsPlayer reports whether s is one of the two competing sides.
func (s Side) IsPlayer() bool {
	return s == SideA || s == SideB
}

// Opponent returns the other side. Empty has no opponent and maps to itself.
func (s Side) Opponent() Side {
	return -s
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("Side(%d)", int8(s))
}

// SideFromInt converts a wire value (+1, -1) into a player side.
func SideFromInt(v int) (Side, error) {
	if v != int(SideA) && v != int(SideB) {
		return Empty, ErrInvalidSide
	}
	return Side(v), nil
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4
)

// Geometry fixes the board dimensions. It is bound once when a board is created and
// travels with the board from then on.
type Geometry struct {
	Rows    int
	Columns int
}

// DefaultGeometry is the classic 6x7 Connect-Four grid.
var DefaultGeometry = Geometry{Rows: DefaultRows, Columns: DefaultColumns}

// Valid reports whether a four-in-a-row fits in both directions.
func (g Geometry) Valid() bool {
	return g.Rows >= ToWin && g.Columns >= ToWin
}

// CenterColumn is the middle column (integer division).
func (g Geometry) CenterColumn() int {
	return g.Columns / 2
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove      Error = "invalid move"
	ErrColumnFull       Error = "column is full"
	ErrColumnOutOfRange Error = "column is out of range"
	ErrNotYourTurn      Error = "not your turn"
	ErrGameOver         Error = "game is already over"
	ErrInvalidSide      Error = "side must be 1 or -1"
	ErrInvalidBoard     Error = "invalid board"
)

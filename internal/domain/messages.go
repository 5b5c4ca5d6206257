package domain

// ClientMessage is a frame sent by a player over the websocket.
type ClientMessage struct {
	Type   string `json:"type"`
	JWT    string `json:"jwt,omitempty"`
	Column *int   `json:"column,omitempty"`
}

// ServerMessage is a frame sent to a player over the websocket.
type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	Opponent    string  `json:"opponent,omitempty"`
	YourPlayer  int     `json:"yourPlayer,omitempty"`
	CurrentTurn int     `json:"currentTurn,omitempty"`
	Column      int     `json:"column"`
	Row         int     `json:"row"`
	Player      int     `json:"player,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	NextTurn    int     `json:"nextTurn,omitempty"`
	Winner      string  `json:"winner,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

const ErrColumnRequired Error = "column is required"

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

package game

import (
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
)

const (
	HumanSide = domain.SideA
	BotSide   = domain.SideB
)

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonAbandoned   = "abandoned"
)

type GameSession struct {
	GameID       string
	Username     string
	BotName      string
	Difficulty   int
	PlayFirst    bool
	Game         *domain.Game
	Reason       string
	CreatedAt    time.Time
	StartedAt    time.Time
	LastActivity time.Time
	FinishedAt   time.Time

	agent      *bot.Agent
	botTimer   *time.Timer
	generation int
	timerMu    sync.Mutex
	mu         sync.Mutex
	manager    *SessionManager
}

// resetGame starts a fresh board; callers hold gs.mu or own gs exclusively.
func (gs *GameSession) resetGame() {
	first := BotSide
	if gs.PlayFirst {
		first = HumanSide
	}
	gs.Game = domain.NewGame(gs.manager.opts.Geometry, first)
	gs.Reason = ""
	gs.FinishedAt = time.Time{}
	gs.StartedAt = gs.manager.now()
	gs.generation++
}

func (gs *GameSession) touch() {
	gs.LastActivity = gs.manager.now()
}

func (gs *GameSession) startMessage() domain.ServerMessage {
	return domain.ServerMessage{
		Type:        "game_start",
		GameID:      gs.GameID,
		Opponent:    gs.BotName,
		YourPlayer:  int(HumanSide),
		CurrentTurn: int(gs.Game.CurrentPlayer),
		Board:       gs.Game.Board.Grid(),
	}
}

// Start sends the current state to a freshly attached connection and lets the agent
// open if it is its turn. Reconnecting to a finished game resends the result.
func (gs *GameSession) Start(conn ConnectionManagerInterface) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.touch()
	conn.SendMessage(gs.GameID, gs.startMessage())

	if gs.Game.IsFinished() {
		conn.SendMessage(gs.GameID, gs.gameOverMessage())
		return
	}
	if gs.Game.CurrentPlayer == BotSide {
		gs.scheduleBotMove(conn)
	}
}

func (gs *GameSession) HandleMove(column int, conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.touch()
	row, err := gs.Game.MakeMove(HumanSide, column)
	if err != nil {
		return err
	}

	conn.SendMessage(gs.GameID, gs.moveMessage(HumanSide, column, row))
	if gs.finishIfOver(conn) {
		return nil
	}

	gs.scheduleBotMove(conn)
	return nil
}

// HandleBotMove lets the agent reply if it is still its turn.
func (gs *GameSession) HandleBotMove(conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.playBotMove(gs.generation, conn)
}

func (gs *GameSession) playBotMove(generation int, conn ConnectionManagerInterface) error {
	// the game may have been restarted or finished while the timer was pending
	if generation != gs.generation || gs.Game.IsFinished() || gs.Game.CurrentPlayer != BotSide {
		return nil
	}

	result, err := gs.agent.BestMove(gs.Game.Board)
	if err != nil {
		return err
	}
	row, err := gs.Game.MakeMove(BotSide, result.Column)
	if err != nil {
		return err
	}

	conn.SendMessage(gs.GameID, gs.moveMessage(BotSide, result.Column, row))
	gs.finishIfOver(conn)
	return nil
}

func (gs *GameSession) scheduleBotMove(conn ConnectionManagerInterface) {
	generation := gs.generation
	delay := gs.manager.opts.BotDelay

	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()
	if gs.botTimer != nil {
		gs.botTimer.Stop()
	}
	gs.botTimer = time.AfterFunc(delay, func() {
		gs.mu.Lock()
		defer gs.mu.Unlock()
		if err := gs.playBotMove(generation, conn); err != nil {
			log.Printf("[BOT] Error handling bot move in %s: %v", gs.GameID, err)
		}
	})
}

func (gs *GameSession) stopBotTimer() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()
	if gs.botTimer != nil {
		gs.botTimer.Stop()
		gs.botTimer = nil
	}
}

// Restart throws the current board away and starts again with the same settings.
func (gs *GameSession) Restart(conn ConnectionManagerInterface) {
	gs.stopBotTimer()

	gs.mu.Lock()
	defer gs.mu.Unlock()

	log.Printf("[SESSION] Restarting session %s", gs.GameID)
	gs.touch()
	gs.resetGame()
	conn.SendMessage(gs.GameID, gs.startMessage())

	if gs.Game.CurrentPlayer == BotSide {
		gs.scheduleBotMove(conn)
	}
}

// Abandon forfeits an active game to the agent and closes the session.
func (gs *GameSession) Abandon(conn ConnectionManagerInterface) {
	gs.stopBotTimer()

	gs.mu.Lock()
	if !gs.Game.IsFinished() {
		gs.Game.Status = domain.StatusWon
		gs.Game.Winner = BotSide
		gs.finish(ReasonAbandoned, conn)
	}
	gameID := gs.GameID
	gs.mu.Unlock()

	gs.manager.RemoveSession(gameID)
	conn.RemoveConnection(gameID)
}

func (gs *GameSession) moveMessage(side domain.Side, column, row int) domain.ServerMessage {
	return domain.ServerMessage{
		Type:     "move_made",
		Column:   column,
		Row:      row,
		Player:   int(side),
		Board:    gs.Game.Board.Grid(),
		NextTurn: int(gs.Game.CurrentPlayer),
	}
}

func (gs *GameSession) winnerName() string {
	switch gs.Game.Winner {
	case HumanSide:
		return gs.Username
	case BotSide:
		return gs.BotName
	default:
		return "draw"
	}
}

func (gs *GameSession) gameOverMessage() domain.ServerMessage {
	return domain.ServerMessage{
		Type:   "game_over",
		Winner: gs.winnerName(),
		Reason: gs.Reason,
		Board:  gs.Game.Board.Grid(),
	}
}

func (gs *GameSession) finishIfOver(conn ConnectionManagerInterface) bool {
	switch gs.Game.Status {
	case domain.StatusWon:
		gs.finish(ReasonConnectFour, conn)
		return true
	case domain.StatusDraw:
		gs.finish(ReasonDraw, conn)
		return true
	}
	return false
}

func (gs *GameSession) finish(reason string, conn ConnectionManagerInterface) {
	gs.FinishedAt = gs.manager.now()
	gs.Reason = reason

	conn.SendMessage(gs.GameID, gs.gameOverMessage())
	log.Printf("[GAME] Game %s over: winner %s (%s) after %d moves", gs.GameID, gs.winnerName(), reason, gs.Game.MoveCount)

	gs.publishAsync(gs.winnerName(), reason, gs.Game.MoveCount, gs.FinishedAt.Sub(gs.StartedAt).Seconds())
}

// publishAsync keeps the Kafka round trip off the game_over path.
func (gs *GameSession) publishAsync(winner, reason string, moves int, duration float64) {
	publisher := gs.manager.publisher
	if publisher == nil {
		return
	}
	gameID, difficulty := gs.GameID, gs.Difficulty
	go publisher.EmitGameOver(gameID, winner, reason, difficulty, moves, duration)
}

package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []domain.ServerMessage
	removed  []string
	sent     chan domain.ServerMessage
}

func newFakeConn() *fakeConn {
	return &fakeConn{sent: make(chan domain.ServerMessage, 128)}
}

func (f *fakeConn) SendMessage(gameID string, message domain.ServerMessage) error {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
	f.sent <- message
	return nil
}

func (f *fakeConn) RemoveConnection(gameID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, gameID)
}

// next waits for the next message of the given type.
func (f *fakeConn) next(t *testing.T, msgType string) domain.ServerMessage {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg := <-f.sent:
			if msg.Type == msgType {
				return msg
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", msgType)
		}
	}
}

type gameOverEvent struct {
	gameID, winner, reason string
	moves                  int
}

type fakePublisher struct {
	events chan gameOverEvent
}

func (p *fakePublisher) EmitGameOver(gameID, winner, reason string, difficulty, moves int, duration float64) {
	p.events <- gameOverEvent{gameID: gameID, winner: winner, reason: reason, moves: moves}
}

func newManager(delay time.Duration) (*SessionManager, *fakePublisher) {
	pub := &fakePublisher{events: make(chan gameOverEvent, 4)}
	return NewSessionManager(Options{BotDelay: delay}, pub), pub
}

func TestCreateSessionValidatesDifficulty(t *testing.T) {
	sm, _ := newManager(0)
	for _, d := range []int{0, 6} {
		if _, err := sm.CreateSession("alice", d, true); !errors.Is(err, bot.ErrInvalidDifficulty) {
			t.Fatalf("difficulty %d: expected ErrInvalidDifficulty, got %v", d, err)
		}
	}
	if sm.Count() != 0 {
		t.Fatalf("no session should be stored, got %d", sm.Count())
	}
}

func TestCreateSessionRespectsCap(t *testing.T) {
	sm := NewSessionManager(Options{BotDelay: time.Hour, MaxSessions: 2}, nil)
	first, _ := sm.CreateSession("alice", 1, true)
	sm.CreateSession("bob", 1, true)

	if _, err := sm.CreateSession("carol", 1, true); !errors.Is(err, ErrTooManySessions) {
		t.Fatalf("expected ErrTooManySessions, got %v", err)
	}
	if sm.Count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", sm.Count())
	}

	sm.RemoveSession(first.GameID)
	if _, err := sm.CreateSession("carol", 1, true); err != nil {
		t.Fatalf("expected room after a removal, got %v", err)
	}
}

func TestHumanMoveGetsBotReply(t *testing.T) {
	sm, _ := newManager(0)
	gs, err := sm.CreateSession("alice", 1, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	conn := newFakeConn()

	gs.Start(conn)
	start := conn.next(t, "game_start")
	if start.CurrentTurn != int(HumanSide) || start.Opponent != "Alice" || len(start.Board) != 6 {
		t.Fatalf("unexpected game_start %+v", start)
	}

	if err := gs.HandleMove(3, conn); err != nil {
		t.Fatalf("move: %v", err)
	}
	human := conn.next(t, "move_made")
	if human.Player != int(HumanSide) || human.Column != 3 || human.Row != 5 {
		t.Fatalf("unexpected human move %+v", human)
	}
	reply := conn.next(t, "move_made")
	if reply.Player != int(BotSide) || reply.NextTurn != int(HumanSide) {
		t.Fatalf("unexpected bot move %+v", reply)
	}
}

func TestMoveOutOfTurnIsRejected(t *testing.T) {
	sm, _ := newManager(time.Hour)
	gs, _ := sm.CreateSession("alice", 1, true)
	conn := newFakeConn()

	if err := gs.HandleMove(0, conn); err != nil {
		t.Fatalf("first move: %v", err)
	}
	if err := gs.HandleMove(1, conn); !errors.Is(err, domain.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if err := gs.HandleBotMove(conn); err != nil {
		t.Fatalf("bot move: %v", err)
	}
	if err := gs.HandleMove(9, conn); !errors.Is(err, domain.ErrColumnOutOfRange) {
		t.Fatalf("expected ErrColumnOutOfRange, got %v", err)
	}
}

func TestBotOpensWhenPlayerGoesSecond(t *testing.T) {
	sm, _ := newManager(0)
	gs, _ := sm.CreateSession("alice", 2, false)
	conn := newFakeConn()

	gs.Start(conn)
	start := conn.next(t, "game_start")
	if start.CurrentTurn != int(BotSide) {
		t.Fatalf("expected the bot to open, got turn %d", start.CurrentTurn)
	}
	opening := conn.next(t, "move_made")
	if opening.Player != int(BotSide) || opening.Column != 3 {
		t.Fatalf("expected the bot to open in the center, got %+v", opening)
	}
}

func TestHumanWinEndsGameAndPublishes(t *testing.T) {
	sm, pub := newManager(time.Hour)
	gs, _ := sm.CreateSession("alice", 1, true)
	conn := newFakeConn()

	// x x x . . o o with o on top of column 6 as well
	for _, m := range []struct {
		side domain.Side
		col  int
	}{{HumanSide, 0}, {BotSide, 6}, {HumanSide, 1}, {BotSide, 6}, {HumanSide, 2}, {BotSide, 5}} {
		if _, err := gs.Game.MakeMove(m.side, m.col); err != nil {
			t.Fatalf("setup move: %v", err)
		}
	}

	if err := gs.HandleMove(3, conn); err != nil {
		t.Fatalf("winning move: %v", err)
	}
	over := conn.next(t, "game_over")
	if over.Winner != "alice" || over.Reason != ReasonConnectFour {
		t.Fatalf("unexpected game_over %+v", over)
	}

	select {
	case ev := <-pub.events:
		if ev.gameID != gs.GameID || ev.winner != "alice" || ev.moves != 7 {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a game_over event")
	}

	if err := gs.HandleMove(4, conn); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestAbandonForfeitsAndRemovesSession(t *testing.T) {
	sm, pub := newManager(time.Hour)
	gs, _ := sm.CreateSession("alice", 3, true)
	conn := newFakeConn()

	gs.Abandon(conn)
	over := conn.next(t, "game_over")
	if over.Winner != "Bob" || over.Reason != ReasonAbandoned {
		t.Fatalf("unexpected game_over %+v", over)
	}
	if _, ok := sm.GetSessionByGameID(gs.GameID); ok {
		t.Fatal("expected the session to be removed")
	}
	if len(conn.removed) != 1 || conn.removed[0] != gs.GameID {
		t.Fatalf("expected the connection to be dropped, got %v", conn.removed)
	}
	if ev := <-pub.events; ev.reason != ReasonAbandoned {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestRestartCancelsPendingBotMove(t *testing.T) {
	sm, _ := newManager(20 * time.Millisecond)
	gs, _ := sm.CreateSession("alice", 1, true)
	conn := newFakeConn()

	if err := gs.HandleMove(0, conn); err != nil {
		t.Fatalf("move: %v", err)
	}
	gs.Restart(conn)
	start := conn.next(t, "game_start")
	if start.CurrentTurn != int(HumanSide) {
		t.Fatalf("unexpected restart %+v", start)
	}

	time.Sleep(100 * time.Millisecond)
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.Game.MoveCount != 0 {
		t.Fatalf("expected an empty board after restart, got %d moves", gs.Game.MoveCount)
	}
}

func TestCleanupOldSessions(t *testing.T) {
	sm := NewSessionManager(Options{IdleTTL: 10 * time.Minute, FinishedTTL: time.Minute}, nil)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return clock }

	idle, _ := sm.CreateSession("idle", 1, true)
	finished, _ := sm.CreateSession("done", 1, true)
	fresh, _ := sm.CreateSession("fresh", 1, true)

	finished.Abandon(newFakeConn())
	// abandon already removes it; put it back to exercise the finished path
	sm.Session[finished.GameID] = finished

	clock = clock.Add(5 * time.Minute)
	fresh.touch()

	clock = clock.Add(6 * time.Minute)
	if removed := sm.CleanupOldSessions(); removed != 2 {
		t.Fatalf("expected 2 sessions removed, got %d", removed)
	}
	if _, ok := sm.GetSessionByGameID(idle.GameID); ok {
		t.Fatal("idle session should be gone")
	}
	if _, ok := sm.GetSessionByGameID(fresh.GameID); !ok {
		t.Fatal("recently touched session should stay")
	}
}

func TestRemoveUnknownSession(t *testing.T) {
	sm, _ := newManager(0)
	if err := sm.RemoveSession("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

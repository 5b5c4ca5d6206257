package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"github.com/iamasit07/connect4-minimax/pkg/auth"
)

type testServer struct {
	sm     *game.SessionManager
	signer *auth.Signer
	url    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	sm := game.NewSessionManager(game.Options{}, nil)
	signer := auth.NewSigner("test-secret", time.Minute)
	h := NewHandler(NewConnectionManager(), sm, signer, []string{"http://localhost:5173"})

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return &testServer{sm: sm, signer: signer, url: "ws" + strings.TrimPrefix(srv.URL, "http")}
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(ts.url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func (ts *testServer) newGame(t *testing.T, playFirst bool) (string, string) {
	t.Helper()
	gs, err := ts.sm.CreateSession("alice", 1, playFirst)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	token, err := ts.signer.GenerateGameToken(gs.GameID, "alice")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return gs.GameID, token
}

func column(c int) *int {
	return &c
}

func read(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	var msg domain.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestPlayOverWebSocket(t *testing.T) {
	ts := newTestServer(t)
	gameID, token := ts.newGame(t, true)
	conn := ts.dial(t)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: token})
	start := read(t, conn)
	if start.Type != "game_start" || start.GameID != gameID || start.CurrentTurn != 1 {
		t.Fatalf("unexpected start %+v", start)
	}

	conn.WriteJSON(domain.ClientMessage{Type: "make_move", Column: column(3)})
	human := read(t, conn)
	if human.Type != "move_made" || human.Player != 1 || human.Column != 3 {
		t.Fatalf("unexpected human move %+v", human)
	}
	reply := read(t, conn)
	if reply.Type != "move_made" || reply.Player != -1 {
		t.Fatalf("unexpected bot reply %+v", reply)
	}
}

func TestInvalidMoveReturnsErrorFrame(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newGame(t, true)
	conn := ts.dial(t)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: token})
	read(t, conn)

	conn.WriteJSON(domain.ClientMessage{Type: "make_move", Column: column(42)})
	msg := read(t, conn)
	if msg.Type != "error" || msg.Message != string(domain.ErrColumnOutOfRange) {
		t.Fatalf("expected an out of range error, got %+v", msg)
	}

	conn.WriteJSON(domain.ClientMessage{Type: "dance"})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected an error for an unknown type, got %+v", msg)
	}
}

func TestMoveWithoutColumnIsRejected(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newGame(t, true)
	conn := ts.dial(t)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: token})
	read(t, conn)

	conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"make_move"}`))
	msg := read(t, conn)
	if msg.Type != "error" || msg.Message != string(domain.ErrColumnRequired) {
		t.Fatalf("expected a column required error, got %+v", msg)
	}

	if moves := ts.sm.ActiveGames()[0].MoveCount; moves != 0 {
		t.Fatalf("expected no move to be played, got %d", moves)
	}

	conn.WriteJSON(domain.ClientMessage{Type: "make_move", Column: column(0)})
	if msg := read(t, conn); msg.Type != "move_made" || msg.Column != 0 {
		t.Fatalf("expected column 0 to still be playable, got %+v", msg)
	}
}

func TestRejectsBadToken(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: "garbage"})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected an error frame, got %+v", msg)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the server to close the connection")
	}
}

func TestRejectsTokenForUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signer.GenerateGameToken("no-such-game", "alice")
	conn := ts.dial(t)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: token})
	if msg := read(t, conn); msg.Type != "error" || msg.Message != "game not found" {
		t.Fatalf("expected game not found, got %+v", msg)
	}
}

func TestAbandonClosesGame(t *testing.T) {
	ts := newTestServer(t)
	gameID, token := ts.newGame(t, true)
	conn := ts.dial(t)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: token})
	read(t, conn)

	conn.WriteJSON(domain.ClientMessage{Type: "abandon"})
	over := read(t, conn)
	if over.Type != "game_over" || over.Reason != game.ReasonAbandoned {
		t.Fatalf("unexpected game_over %+v", over)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the server to close the connection")
	}
	if _, ok := ts.sm.GetSessionByGameID(gameID); ok {
		t.Fatal("expected the session to be removed")
	}
}

func TestCheckOrigin(t *testing.T) {
	h := NewHandler(NewConnectionManager(), nil, nil, []string{"https://play.example.com"})

	req := httptest.NewRequest("GET", "/ws", nil)
	if !h.Upgrader.CheckOrigin(req) {
		t.Fatal("requests without Origin should pass")
	}
	req.Header.Set("Origin", "https://play.example.com")
	if !h.Upgrader.CheckOrigin(req) {
		t.Fatal("allowed origin rejected")
	}
	req.Header.Set("Origin", "https://evil.example.com")
	if h.Upgrader.CheckOrigin(req) {
		t.Fatal("unknown origin accepted")
	}
}

package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"github.com/iamasit07/connect4-minimax/pkg/auth"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Signer         *auth.Signer
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, signer *auth.Signer, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Signer:         signer,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no Origin
				return origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	session, ok := h.initialize(conn)
	if !ok {
		conn.Close()
		return
	}
	gameID := session.GameID

	done := make(chan struct{})
	go keepAlive(conn, done)

	defer func() {
		close(done)
		log.Printf("[WS] Connection closed for game %s", gameID)
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	session.Start(h.ConnManager)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Game %s disconnected unexpectedly: %v", gameID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.sendError(gameID, conn, "invalid message format")
			continue
		}

		if !h.processMessage(session, conn, msg) {
			return
		}
	}
}

// initialize waits for the init frame and binds the socket to the token's game.
func (h *Handler) initialize(conn *websocket.Conn) (*game.GameSession, bool) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		return nil, false
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.JWT == "" {
		log.Printf("[WS] Missing initialization or token")
		h.ConnManager.sendError("", conn, "first message must be init with a token")
		return nil, false
	}

	claims, err := h.Signer.ValidateGameToken(message.JWT)
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		h.ConnManager.sendError("", conn, "invalid or expired token")
		return nil, false
	}

	session, exists := h.SessionManager.GetSessionByGameID(claims.GameID)
	if !exists {
		h.ConnManager.sendError("", conn, "game not found")
		return nil, false
	}

	h.ConnManager.AddConnection(session.GameID, conn)
	log.Printf("[WS] Connection initialized for game %s (%s)", session.GameID, claims.Username)
	return session, true
}

// processMessage handles one frame and reports whether the connection stays open.
func (h *Handler) processMessage(session *game.GameSession, conn *websocket.Conn, msg domain.ClientMessage) bool {
	switch msg.Type {
	case "make_move":
		if msg.Column == nil {
			h.ConnManager.sendError(session.GameID, conn, string(domain.ErrColumnRequired))
			return true
		}
		if err := session.HandleMove(*msg.Column, h.ConnManager); err != nil {
			h.ConnManager.sendError(session.GameID, conn, err.Error())
		}
	case "restart":
		session.Restart(h.ConnManager)
	case "abandon":
		session.Abandon(h.ConnManager)
		return false
	case "ping":
		h.ConnManager.SendMessage(session.GameID, domain.ServerMessage{Type: "pong"})
	default:
		h.ConnManager.sendError(session.GameID, conn, "unknown message type: "+msg.Type)
	}
	return true
}

// WriteControl may run concurrently with WriteJSON.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

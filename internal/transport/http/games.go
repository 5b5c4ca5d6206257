package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"github.com/iamasit07/connect4-minimax/pkg/auth"
)

const maxUsernameLength = 32

type GameHandler struct {
	SessionManager *game.SessionManager
	Signer         *auth.Signer
	// DefaultDepth is used when a request names no difficulty.
	DefaultDepth int
}

func NewGameHandler(sm *game.SessionManager, signer *auth.Signer, defaultDepth int) *GameHandler {
	return &GameHandler{SessionManager: sm, Signer: signer, DefaultDepth: defaultDepth}
}

type createGameRequest struct {
	Username   string `json:"username" binding:"required"`
	Difficulty any    `json:"difficulty"`
	PlayFirst  bool   `json:"playFirst"`
}

type createGameResponse struct {
	GameID     string `json:"gameId"`
	Token      string `json:"token"`
	Opponent   string `json:"opponent"`
	Difficulty int    `json:"difficulty"`
}

// CreateGame starts a session against the engine and returns the token for /ws.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || len(username) > maxUsernameLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 1 to 32 characters"})
		return
	}

	depth, err := parseDifficultyField(req.Difficulty, h.DefaultDepth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.SessionManager.CreateSession(username, depth, req.PlayFirst)
	if errors.Is(err, game.ErrTooManySessions) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Signer.GenerateGameToken(session.GameID, username)
	if err != nil {
		log.Printf("[GAME] Failed to sign token for %s: %v", session.GameID, err)
		h.SessionManager.RemoveSession(session.GameID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	c.JSON(http.StatusCreated, createGameResponse{
		GameID:     session.GameID,
		Token:      token,
		Opponent:   session.BotName,
		Difficulty: depth,
	})
}

// difficulty arrives either as a name ("hard") or a number (4); missing means defaultDepth
func parseDifficultyField(v any, defaultDepth int) (int, error) {
	switch d := v.(type) {
	case nil:
		return bot.ParseDifficulty(strconv.Itoa(defaultDepth))
	case string:
		return bot.ParseDifficulty(d)
	case float64:
		if d != float64(int(d)) {
			return 0, bot.ErrInvalidDifficulty
		}
		return bot.ParseDifficulty(strconv.Itoa(int(d)))
	default:
		return 0, errors.New("difficulty must be a string or a number")
	}
}

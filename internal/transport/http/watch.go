package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
)

type WatchHandler struct {
	SessionManager *game.SessionManager
}

func NewWatchHandler(sm *game.SessionManager) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

type liveGameResponse struct {
	GameID     string `json:"gameId"`
	Player     string `json:"player"`
	Opponent   string `json:"opponent"`
	Difficulty int    `json:"difficulty"`
	MoveCount  int    `json:"moveCount"`
	StartedAt  string `json:"startedAt"`
}

// GetLiveGames returns all games still in progress
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	activeGames := h.SessionManager.ActiveGames()

	response := make([]liveGameResponse, 0, len(activeGames))
	for _, g := range activeGames {
		response = append(response, liveGameResponse{
			GameID:     g.GameID,
			Player:     g.Username,
			Opponent:   g.BotName,
			Difficulty: g.Difficulty,
			MoveCount:  g.MoveCount,
			StartedAt:  g.StartedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}

package http

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
)

// MaxEngineDepth caps the depth a single HTTP request may ask for.
const MaxEngineDepth = 8

type EngineHandler struct {
	Geometry domain.Geometry
}

func NewEngineHandler(g domain.Geometry) *EngineHandler {
	return &EngineHandler{Geometry: g}
}

type moveRequest struct {
	Board [][]int `json:"board" binding:"required"`
	Side  int     `json:"side" binding:"required"`
	Depth int     `json:"depth"`
}

type moveResponse struct {
	Column  int     `json:"column"`
	Value   float64 `json:"value"`
	Outcome string  `json:"outcome"`
}

// Move returns the engine's column for the posted position.
func (h *EngineHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	side, err := domain.SideFromInt(req.Side)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Depth < 1 || req.Depth > MaxEngineDepth {
		c.JSON(http.StatusBadRequest, gin.H{"error": "depth must be between 1 and 8"})
		return
	}

	board, err := domain.BoardFromGrid(h.Geometry, req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := bot.NewAgent(side, req.Depth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := agent.BestMove(board)
	if errors.Is(err, bot.ErrNoLegalMove) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, toMoveResponse(board, side, result))
}

// JSON has no infinities, so proven results are reported through Outcome.
func toMoveResponse(board domain.Board, side domain.Side, result bot.SearchResult) moveResponse {
	resp := moveResponse{Column: result.Column, Outcome: "estimate", Value: result.Value}
	after := board.DropDisc(result.Column, side)
	switch {
	case after.IsFull() && !domain.HasFourInARow(after, side):
		resp.Outcome, resp.Value = "draw", 0
	case math.IsInf(result.Value, 1):
		resp.Outcome, resp.Value = "win", 0
	case math.IsInf(result.Value, -1):
		resp.Outcome, resp.Value = "loss", 0
	}
	return resp
}

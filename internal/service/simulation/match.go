package simulation

import (
	"fmt"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
)

// Scores are from the first player's point of view.
const (
	ScoreWin  = 1.0
	ScoreDraw = 0.5
	ScoreLoss = 0.0
)

type MatchResult struct {
	FirstDepth  int         `json:"firstDepth"`
	SecondDepth int         `json:"secondDepth"`
	Score       float64     `json:"score"`
	Winner      domain.Side `json:"winner"`
	Moves       []int       `json:"moves"`
}

// DepthDiff is how much deeper the second player searched.
func (m MatchResult) DepthDiff() int {
	return m.SecondDepth - m.FirstDepth
}

// PlayMatch lets two agents play a full game. SideA moves first with firstDepth,
// SideB answers with secondDepth, and each searches as the maximizing side.
func PlayMatch(g domain.Geometry, firstDepth, secondDepth int) (MatchResult, error) {
	first, err := bot.NewAgent(domain.SideA, firstDepth)
	if err != nil {
		return MatchResult{}, fmt.Errorf("first agent: %w", err)
	}
	second, err := bot.NewAgent(domain.SideB, secondDepth)
	if err != nil {
		return MatchResult{}, fmt.Errorf("second agent: %w", err)
	}
	agents := map[domain.Side]*bot.Agent{
		domain.SideA: first,
		domain.SideB: second,
	}

	game := domain.NewGame(g, domain.SideA)
	for !game.IsFinished() {
		agent := agents[game.CurrentPlayer]
		move, err := agent.BestMove(game.Board)
		if err != nil {
			return MatchResult{}, fmt.Errorf("move %d: %w", game.MoveCount+1, err)
		}
		if _, err := game.MakeMove(agent.Side, move.Column); err != nil {
			return MatchResult{}, fmt.Errorf("move %d column %d: %w", game.MoveCount+1, move.Column, err)
		}
	}

	result := MatchResult{
		FirstDepth:  firstDepth,
		SecondDepth: secondDepth,
		Winner:      game.Winner,
		Moves:       game.Moves,
	}
	switch game.Winner {
	case domain.SideA:
		result.Score = ScoreWin
	case domain.SideB:
		result.Score = ScoreLoss
	default:
		result.Score = ScoreDraw
	}
	return result, nil
}

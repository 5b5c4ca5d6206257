package bot

import (
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

// Interactive play offers depths on a 1 to 5 scale. The search itself has no ceiling.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

const ErrInvalidDifficulty domain.Error = "difficulty must be easy, medium, hard or a depth from 1 to 5"

var namedDifficulties = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// ParseDifficulty maps a difficulty name or a numeric depth to a search depth.
func ParseDifficulty(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if depth, ok := namedDifficulties[s]; ok {
		return depth, nil
	}

	depth, err := strconv.Atoi(s)
	if err != nil || depth < MinDifficulty || depth > MaxDifficulty {
		return 0, ErrInvalidDifficulty
	}
	return depth, nil
}

var botNames = map[int]string{
	1: "Alice",
	3: "Bob",
	5: "Charles",
}

// BotName gives each depth a display name for the opponent.
func BotName(depth int) string {
	if name, ok := botNames[depth]; ok {
		return name
	}
	return "BOT-" + strconv.Itoa(depth)
}

package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

const (
	colorRed   = "\033[1;31;40m"
	colorBlue  = "\033[1;34;40m"
	colorReset = "\033[0m"
)

// Renderer draws boards the way a terminal player sees them: x for the human, o for the agent.
type Renderer struct {
	Color bool
}

func (r Renderer) paint(color, s string) string {
	if !r.Color || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r Renderer) glyph(s domain.Side) string {
	switch s {
	case domain.SideA:
		return r.paint(colorBlue, "x")
	case domain.SideB:
		return r.paint(colorRed, "o")
	default:
		return " "
	}
}

func (r Renderer) Render(w io.Writer, board domain.Board) {
	var sb strings.Builder
	sb.WriteString("\n\n\t ")
	for c := 0; c < board.Columns(); c++ {
		fmt.Fprintf(&sb, " %d |", c+1)
	}
	sb.WriteString("\n\t ")
	for c := 0; c < board.Columns(); c++ {
		sb.WriteString(" _  ")
	}
	sb.WriteString("\n")

	for row := 0; row < board.Rows(); row++ {
		sb.WriteString("\t")
		for col := 0; col < board.Columns(); col++ {
			sb.WriteString("| " + r.glyph(board.At(row, col)) + " ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("\n")
	io.WriteString(w, sb.String())
}

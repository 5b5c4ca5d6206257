package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
)

const (
	HumanSide = domain.SideA
	AgentSide = domain.SideB
)

// errInputClosed ends the session when the player closes stdin.
var errInputClosed = errors.New("input closed")

// Console runs human-versus-agent games over a line based terminal.
type Console struct {
	in         *bufio.Scanner
	out        io.Writer
	geometry   domain.Geometry
	thinkDelay time.Duration
	renderer   Renderer
}

type Options struct {
	Geometry   domain.Geometry
	ThinkDelay time.Duration
	Color      bool
}

func New(in io.Reader, out io.Writer, opts Options) *Console {
	if !opts.Geometry.Valid() {
		opts.Geometry = domain.DefaultGeometry
	}
	return &Console{
		in:         bufio.NewScanner(in),
		out:        out,
		geometry:   opts.Geometry,
		thinkDelay: opts.ThinkDelay,
		renderer:   Renderer{Color: opts.Color},
	}
}

func (c *Console) say(color, format string, args ...any) {
	fmt.Fprintln(c.out, c.renderer.paint(color, fmt.Sprintf(format, args...)))
}

func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) askYesNo(prompt string) (bool, error) {
	answer, err := c.ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// Run plays games until the player declines a rematch, input ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.say(colorRed, "HEY HUMAN, IT'S AI :)")
	c.say(colorRed, "LET'S PLAY A GAME!")

	for {
		again, err := c.playOnce(ctx)
		if errors.Is(err, errInputClosed) {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (c *Console) askDifficulty() (int, error) {
	prompt := c.renderer.paint(colorRed, "ON A SCALE FROM 1 TO 5, HOW SMART DO YOU WANT ME TO GET? ")
	for {
		answer, err := c.ask(prompt)
		if err != nil {
			return 0, err
		}
		depth, err := bot.ParseDifficulty(answer)
		if err == nil {
			return depth, nil
		}
		c.say(colorRed, "PICK A NUMBER FROM 1 TO 5")
	}
}

func (c *Console) playOnce(ctx context.Context) (bool, error) {
	depth, err := c.askDifficulty()
	if err != nil {
		return false, err
	}
	playerStarts, err := c.askYesNo(c.renderer.paint(colorRed, "DO YOU WANNA START(y/n)? "))
	if err != nil {
		return false, err
	}
	agent, err := bot.NewAgent(AgentSide, depth)
	if err != nil {
		return false, err
	}

	first := AgentSide
	if playerStarts {
		first = HumanSide
	}
	game := domain.NewGame(c.geometry, first)

	c.say(colorRed, "ALRIGHT, LET'S GO!")
	c.renderer.Render(c.out, game.Board)

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		if game.CurrentPlayer == HumanSide {
			err = c.humanTurn(game)
		} else {
			err = c.agentTurn(ctx, game, agent)
		}
		if err != nil {
			return false, err
		}
		c.renderer.Render(c.out, game.Board)
	}

	switch game.Winner {
	case HumanSide:
		c.say(colorBlue, "                    YOU WON, HUMAN!\n")
	case AgentSide:
		c.say(colorRed, "                     (A)I WON!\n")
	default:
		c.say("", "                     GAME OVER, IT'S A DRAW\n")
	}

	return c.askYesNo("DO YOU WANT TO PLAY AGAIN(y/n)?")
}

func (c *Console) humanTurn(game *domain.Game) error {
	prompt := fmt.Sprintf("Choose a Column between 1 and %d: ", game.Board.Columns())
	for {
		answer, err := c.ask(prompt)
		if err != nil {
			return err
		}
		col, err := strconv.Atoi(answer)
		if err != nil {
			c.say("", "CHOOSE AN INTEGER")
			continue
		}
		if _, err := game.MakeMove(HumanSide, col-1); err != nil {
			c.say("", "CHOOSE A VALID COLUMN NUMBER")
			continue
		}
		return nil
	}
}

func (c *Console) agentTurn(ctx context.Context, game *domain.Game, agent *bot.Agent) error {
	c.say(colorRed, "I'M THINKING...")
	if c.thinkDelay > 0 {
		select {
		case <-time.After(c.thinkDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	move, err := agent.BestMove(game.Board)
	if err != nil {
		return err
	}
	_, err = game.MakeMove(AgentSide, move.Column)
	return err
}

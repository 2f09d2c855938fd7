package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rocket-Z/Astra-Do/game"
	"github.com/Rocket-Z/Astra-Do/gamemaster"
)

type Controller interface {
	Run(ctx context.Context) error
}

// consoleController lets a person play through a text stream. Each line is a
// cell number, "skip", "restart" or "quit".
type consoleController struct {
	session *gamemaster.Session
	mode    gamemaster.Mode
	in      *bufio.Scanner
	out     io.Writer
}

func NewConsoleController(session *gamemaster.Session, mode gamemaster.Mode, in io.Reader, out io.Writer) Controller {
	return &consoleController{
		session: session,
		mode:    mode,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

func (c *consoleController) Run(ctx context.Context) error {
	if err := c.start(ctx); err != nil {
		return err
	}

	for c.prompt(); c.in.Scan(); c.prompt() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(c.in.Text())
		var err error
		switch line {
		case "":
			continue
		case "quit":
			return nil
		case "restart":
			c.session.Restart()
			err = c.start(ctx)
		case "skip", "pass":
			err = c.session.Skip(ctx)
		default:
			cell, convErr := strconv.Atoi(line)
			if convErr != nil || cell < 0 || cell >= game.NumCells {
				fmt.Fprintf(c.out, "not a cell: %q\n", line)
				continue
			}
			err = c.session.Play(ctx, game.Cell(cell))
		}

		switch {
		case errors.Is(err, gamemaster.ErrGameOver):
			fmt.Fprintln(c.out, "game is over, type restart or quit")
		case err != nil:
			fmt.Fprintln(c.out, err)
		}
	}
	return c.in.Err()
}

func (c *consoleController) start(ctx context.Context) error {
	_, _, err := c.session.Start(ctx, c.mode)
	return err
}

func (c *consoleController) prompt() {
	pos := c.session.Position()
	fmt.Fprintln(c.out, pos)
	if result := c.session.Result(); result != "" {
		fmt.Fprintln(c.out, result)
		return
	}
	if pos.NumLegalMoves() == 0 {
		fmt.Fprintln(c.out, "no placement available, type skip")
		return
	}
	fmt.Fprintf(c.out, "legal: %v\n> ", pos.LegalMoves())
}

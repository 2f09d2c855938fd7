package game

import (
	"errors"
	"fmt"
)

// Cell identifies one of the 54 triangles of the board.
type Cell uint8

const NumCells = 54

// Pass is the move played when the side to move has no legal placement.
// Apply and Play treat every value >= NumCells as a pass.
const Pass Cell = NumCells

// Side is the colour of a piece or of a winner.
type Side int8

const (
	None Side = iota // Empty cell, or no winner while the game is running
	Black
	White
	Draw
)

func (s Side) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	case Draw:
		return "Draw"
	default:
		return "None"
	}
}

func (c Cell) IsPass() bool {
	return c >= NumCells
}

func (c Cell) String() string {
	if c.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("%d", uint8(c))
}

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrGameOver    = errors.New("game is over")
)

package game

import (
	"fmt"
	"strings"
)

// Position is a full game state. It holds no references, so a copy is an
// independent position.
type Position struct {
	black       Bitboard
	white       Bitboard
	legal       Bitboard // Legal placements for the side to move
	blackToMove bool
	stale       bool // Previous move was a pass
}

// NewPosition returns the opening position: black on 0, 18 and 36, white on
// 9, 27 and 45, black to move.
func NewPosition() Position {
	p := Position{
		black:       BitboardOf(0, 18, 36),
		white:       BitboardOf(9, 27, 45),
		blackToMove: true,
	}
	p.legal = p.findLegalMoves()
	return p
}

// NewPositionFrom sets up a position from the pieces of the side to move and
// of its opponent. The two sets are expected to be disjoint.
func NewPositionFrom(mover, opponent []Cell, blackToMove bool) Position {
	p := Position{blackToMove: blackToMove}
	own, other := BitboardOf(mover...), BitboardOf(opponent...)
	if blackToMove {
		p.black, p.white = own, other
	} else {
		p.black, p.white = other, own
	}
	p.legal = p.findLegalMoves()
	return p
}

func (p Position) Black() Bitboard { return p.black }
func (p Position) White() Bitboard { return p.white }

// Mover returns the pieces of the side to move.
func (p Position) Mover() Bitboard {
	if p.blackToMove {
		return p.black
	}
	return p.white
}

// Opponent returns the pieces of the side that just moved.
func (p Position) Opponent() Bitboard {
	if p.blackToMove {
		return p.white
	}
	return p.black
}

func (p Position) Empty() Bitboard {
	return fullBoard &^ (p.black | p.white)
}

func (p Position) BlackToMove() bool { return p.blackToMove }

// ToMove returns the colour of the side to move.
func (p Position) ToMove() Side {
	if p.blackToMove {
		return Black
	}
	return White
}

func (p Position) IsStale() bool { return p.stale }

// LegalMoves lists the legal placements in ascending order.
func (p Position) LegalMoves() []Cell {
	return p.legal.Cells()
}

func (p Position) LegalMask() Bitboard { return p.legal }

func (p Position) NumLegalMoves() int { return p.legal.Count() }

func (p Position) IsLegal(c Cell) bool { return p.legal.Has(c) }

// IsTerminal reports whether both sides are out of moves: the side to move
// has no placement and the previous move was already a pass.
func (p Position) IsTerminal() bool {
	return p.legal.IsEmpty() && p.stale
}

func (p Position) PieceCounts() (black, white int) {
	return p.black.Count(), p.white.Count()
}

// Score is the piece differential from black's point of view.
func (p Position) Score() int {
	black, white := p.PieceCounts()
	return black - white
}

// Winner returns the side with more pieces on a finished board, Draw on
// equal counts and None while the game is still running.
func (p Position) Winner() Side {
	if !p.IsTerminal() {
		return None
	}
	switch score := p.Score(); {
	case score > 0:
		return Black
	case score < 0:
		return White
	default:
		return Draw
	}
}

// At returns the occupant of a cell.
func (p Position) At(c Cell) Side {
	switch {
	case p.black.Has(c):
		return Black
	case p.white.Has(c):
		return White
	default:
		return None
	}
}

func (p Position) String() string {
	var sb strings.Builder
	black, white := p.PieceCounts()
	fmt.Fprintf(&sb, "%s to move (black %d, white %d", p.ToMove(), black, white)
	if p.stale {
		sb.WriteString(", after pass")
	}
	sb.WriteString(")\n")
	for l := 0; l < 6; l++ { // Horizontal lines, top to bottom
		line := lines[l]
		sb.WriteString(strings.Repeat(" ", 11-len(line)))
		for _, c := range line {
			switch {
			case p.black.Has(c):
				sb.WriteString("x ")
			case p.white.Has(c):
				sb.WriteString("o ")
			case p.legal.Has(c):
				sb.WriteString("* ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

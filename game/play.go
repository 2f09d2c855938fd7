package game

import "fmt"

type scanState uint8

const (
	seeking    scanState = iota // No empty cell to play on yet
	candidate                   // Empty cell found, nothing to bracket yet
	bracketing                  // Empty cell followed by opponent pieces
)

func (p Position) findLegalMoves() Bitboard {
	own, other := p.Mover(), p.Opponent()
	var moves Bitboard
	for _, line := range lines {
		moves |= scanLine(line, own, other, 0, 1)
		moves |= scanLine(line, own, other, len(line)-1, -1)
	}
	return moves
}

// scanLine walks a line in one direction and reports every empty cell that
// is followed by a run of opponent pieces closed by an own piece.
func scanLine(line []Cell, own, other Bitboard, start, step int) Bitboard {
	var moves Bitboard
	state := seeking
	var move Cell
	for i := start; i >= 0 && i < len(line); i += step {
		c := line[i]
		switch {
		case own.Has(c):
			if state == bracketing {
				moves = moves.With(move)
			}
			state = seeking
		case other.Has(c):
			if state == candidate {
				state = bracketing
			}
		default:
			// An empty cell always restarts the scan from itself.
			move, state = c, candidate
		}
	}
	return moves
}

// Apply plays move in place. The move must be taken from LegalMoves or be a
// pass; legality is not checked. Any value >= NumCells is a pass.
func (p *Position) Apply(move Cell) {
	if move.IsPass() {
		p.stale = true
		p.blackToMove = !p.blackToMove
		p.legal = p.findLegalMoves()
		return
	}

	own, other := p.Mover(), p.Opponent()
	flips := captures(move, own, other)
	own = own.With(move) | flips
	other &^= flips
	if p.blackToMove {
		p.black, p.white = own, other
	} else {
		p.black, p.white = other, own
	}

	p.stale = false
	p.blackToMove = !p.blackToMove
	p.legal = p.findLegalMoves()
}

// Play returns the position after move, leaving p untouched.
func (p Position) Play(move Cell) Position {
	p.Apply(move)
	return p
}

// PlayChecked is Play for untrusted input. Placements must be legal, and a
// pass is only accepted when the side to move has no placement.
func (p Position) PlayChecked(move Cell) (Position, error) {
	if p.IsTerminal() {
		return p, ErrGameOver
	}
	switch {
	case move > Pass:
		return p, fmt.Errorf("%w: %d is off the board", ErrInvalidMove, move)
	case move == Pass && !p.legal.IsEmpty():
		return p, fmt.Errorf("%w: cannot pass with %d legal moves", ErrInvalidMove, p.legal.Count())
	case move < Pass && !p.legal.Has(move):
		return p, fmt.Errorf("%w: cell %d is not a legal placement", ErrInvalidMove, move)
	}
	return p.Play(move), nil
}

// Flips lists the opponent pieces that placing on move would capture.
func (p Position) Flips(move Cell) []Cell {
	if move.IsPass() {
		return nil
	}
	return captures(move, p.Mover(), p.Opponent()).Cells()
}

func captures(move Cell, own, other Bitboard) Bitboard {
	var flips Bitboard
	for _, s := range slots[move] {
		line := lines[s.Line]
		flips |= bracket(line, s.Offset, 1, own, other)
		flips |= bracket(line, s.Offset, -1, own, other)
	}
	return flips
}

// bracket returns the opponent run next to line[from] in direction step if
// an own piece closes it, and nothing otherwise.
func bracket(line []Cell, from, step int, own, other Bitboard) Bitboard {
	var run Bitboard
	for i := from + step; i >= 0 && i < len(line); i += step {
		c := line[i]
		switch {
		case other.Has(c):
			run = run.With(c)
		case own.Has(c):
			return run
		default:
			return 0
		}
	}
	return 0
}

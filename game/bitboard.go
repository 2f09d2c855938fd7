package game

import "math/bits"

// Bitboard is a set of cells, bit i standing for cell i.
type Bitboard uint64

const fullBoard Bitboard = 1<<NumCells - 1

func (b Bitboard) Has(c Cell) bool {
	return c < NumCells && b&(1<<c) != 0
}

func (b Bitboard) With(c Cell) Bitboard {
	return b | 1<<c
}

func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

func (b Bitboard) IsEmpty() bool {
	return b == 0
}

// Cells lists the members of b in ascending order.
func (b Bitboard) Cells() []Cell {
	cells := make([]Cell, 0, b.Count())
	for b != 0 {
		cells = append(cells, Cell(bits.TrailingZeros64(uint64(b))))
		b &= b - 1
	}
	return cells
}

// Nth returns the n-th smallest member of b, counting from zero.
// It returns Pass when b has n or fewer members.
func (b Bitboard) Nth(n int) Cell {
	for ; b != 0; b &= b - 1 {
		if n == 0 {
			return Cell(bits.TrailingZeros64(uint64(b)))
		}
		n--
	}
	return Pass
}

// BitboardOf builds a set from a list of cells, ignoring values off the board.
func BitboardOf(cells ...Cell) Bitboard {
	var b Bitboard
	for _, c := range cells {
		if c < NumCells {
			b = b.With(c)
		}
	}
	return b
}

package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestGeometry(t *testing.T) {
	t.Run("eighteen lines of seven to eleven cells", func(t *testing.T) {
		require.Equal(t, 18, NumLines())
		seen := map[Cell]int{}
		for l := 0; l < NumLines(); l++ {
			line := Line(l)
			require.GreaterOrEqual(t, len(line), 7)
			require.LessOrEqual(t, len(line), 11)
			for _, c := range line {
				seen[c]++
			}
		}
		require.Len(t, seen, NumCells)
		for c, n := range seen {
			require.Equal(t, 3, n, "cell %d should sit on one line per axis", c)
		}
	})

	t.Run("reverse index points back into the lines", func(t *testing.T) {
		for c := Cell(0); c < NumCells; c++ {
			for _, s := range LinesThrough(c) {
				require.Equal(t, c, Line(s.Line)[s.Offset])
			}
		}
	})

	t.Run("reverse index matches the reference table", func(t *testing.T) {
		require.Equal(t, []Slot{{3, 5}, {9, 6}, {15, 6}}, LinesThrough(0))
		require.Equal(t, []Slot{{2, 6}, {9, 4}, {14, 5}}, LinesThrough(18))
		require.Equal(t, []Slot{{0, 6}, {9, 0}, {12, 1}}, LinesThrough(26))
		require.Equal(t, []Slot{{5, 0}, {8, 10}, {17, 5}}, LinesThrough(53))
		require.Nil(t, LinesThrough(Pass))
	})
}

func TestNewPosition(t *testing.T) {
	p := NewPosition()

	require.True(t, p.BlackToMove())
	require.False(t, p.IsStale())
	require.False(t, p.IsTerminal())
	require.Equal(t, []Cell{11, 29, 47}, p.LegalMoves())
	black, white := p.PieceCounts()
	require.Equal(t, 3, black)
	require.Equal(t, 3, white)
	require.Equal(t, None, p.Winner())
	require.Equal(t, Black, p.At(18))
	require.Equal(t, White, p.At(27))
	require.Equal(t, None, p.At(11))
}

func TestNewPositionFrom(t *testing.T) {
	t.Run("mover is white when white is to move", func(t *testing.T) {
		p := NewPositionFrom([]Cell{27, 45}, []Cell{0, 9, 11, 18, 36}, false)

		require.Equal(t, BitboardOf(0, 9, 11, 18, 36), p.Black())
		require.Equal(t, BitboardOf(27, 45), p.White())
		require.Equal(t, White, p.ToMove())
		require.Equal(t, []Cell{2, 10, 12, 20, 38}, p.LegalMoves())
	})

	t.Run("cells off the board are dropped", func(t *testing.T) {
		p := NewPositionFrom([]Cell{0, 60}, []Cell{Pass}, true)

		black, white := p.PieceCounts()
		require.Equal(t, 1, black)
		require.Equal(t, 0, white)
	})
}

func TestApply(t *testing.T) {
	t.Run("opening placement flips the bracketed piece", func(t *testing.T) {
		p := NewPosition()
		p.Apply(11)

		require.Equal(t, BitboardOf(0, 9, 11, 18, 36), p.Black())
		require.Equal(t, BitboardOf(27, 45), p.White())
		require.False(t, p.BlackToMove())
		require.False(t, p.IsStale())
		require.Equal(t, []Cell{2, 10, 12, 20, 38}, p.LegalMoves())
	})

	t.Run("reply captures along one line through several pieces", func(t *testing.T) {
		p := NewPosition().Play(11)
		require.ElementsMatch(t, []Cell{9, 11, 18}, p.Flips(10))

		p.Apply(10)

		require.Equal(t, BitboardOf(0, 36), p.Black())
		require.Equal(t, BitboardOf(9, 10, 11, 18, 27, 45), p.White())
		require.True(t, p.BlackToMove())
	})

	t.Run("play leaves the original position untouched", func(t *testing.T) {
		p := NewPosition()
		q := p.Play(29)

		require.Equal(t, NewPosition(), p)
		require.NotEqual(t, p, q)
	})

	t.Run("any value past the board is a pass", func(t *testing.T) {
		p := NewPosition()
		p.Apply(100)

		require.True(t, p.IsStale())
		require.False(t, p.BlackToMove())
		black, white := p.PieceCounts()
		require.Equal(t, 3, black)
		require.Equal(t, 3, white)
		require.Equal(t, []Cell{2, 20, 38}, p.LegalMoves())
	})

	t.Run("placement clears the stale flag", func(t *testing.T) {
		p := NewPosition().Play(Pass)
		require.True(t, p.IsStale())

		p.Apply(p.LegalMoves()[0])
		require.False(t, p.IsStale())
	})
}

func TestCaptureRuns(t *testing.T) {
	// Horizontal line 3 runs 49 50 46 47 45 0 9 11 12 16 17. White plays on 9
	// and closes a run of k black pieces with the white piece right behind
	// it. The black piece past that white piece must stay black.
	tests := []struct {
		name   string
		run    []Cell
		closer Cell
		beyond Cell
	}{
		{name: "run of one", run: []Cell{0}, closer: 45, beyond: 47},
		{name: "run of two", run: []Cell{0, 45}, closer: 47, beyond: 46},
		{name: "run of three", run: []Cell{0, 45, 47}, closer: 46, beyond: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPositionFrom([]Cell{tt.closer}, append([]Cell{tt.beyond}, tt.run...), false)
			require.True(t, p.IsLegal(9))

			p.Apply(9)

			require.Equal(t, BitboardOf(append([]Cell{9, tt.closer}, tt.run...)...), p.White())
			require.Equal(t, BitboardOf(tt.beyond), p.Black())
		})
	}

	t.Run("open run captures nothing", func(t *testing.T) {
		// 35 black, 34 empty, 33 black, 32 white: only 34 closes a bracket.
		p := NewPositionFrom([]Cell{32}, []Cell{35, 33}, false)

		require.True(t, p.IsLegal(34))
		require.False(t, p.IsLegal(40))
		require.Equal(t, []Cell{33}, p.Flips(34))
		require.Empty(t, p.Flips(40))
	})

	t.Run("cell bracketing on several axes flips every run once", func(t *testing.T) {
		// 10 sits on lines 4, 10 and 14. White brackets black on two of them.
		p := NewPositionFrom([]Cell{2, 27}, []Cell{3, 11, 9, 18}, false)

		require.ElementsMatch(t, []Cell{3, 9, 11, 18}, p.Flips(10))
		p.Apply(10)
		require.Equal(t, BitboardOf(2, 3, 9, 10, 11, 18, 27), p.White())
		require.True(t, p.Black().IsEmpty())
	})
}

func TestPassAndTerminal(t *testing.T) {
	p := NewPositionFrom([]Cell{0}, nil, true)
	require.Empty(t, p.LegalMoves())
	require.False(t, p.IsTerminal(), "a first pass does not end the game")

	p.Apply(Pass)
	require.True(t, p.IsStale())
	require.Empty(t, p.LegalMoves())
	require.True(t, p.IsTerminal())
	require.Equal(t, Black, p.Winner())
	require.Equal(t, 1, p.Score())

	p.Apply(Pass)
	require.True(t, p.IsTerminal(), "passing on a finished board keeps it finished")
}

func TestPlayChecked(t *testing.T) {
	p := NewPosition()

	t.Run("legal placement", func(t *testing.T) {
		got, err := p.PlayChecked(29)
		require.NoError(t, err)
		require.Equal(t, p.Play(29), got)
	})

	t.Run("occupied cell", func(t *testing.T) {
		_, err := p.PlayChecked(0)
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("empty cell without capture", func(t *testing.T) {
		_, err := p.PlayChecked(1)
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("pass while placements exist", func(t *testing.T) {
		_, err := p.PlayChecked(Pass)
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("value past the pass sentinel", func(t *testing.T) {
		_, err := p.PlayChecked(Pass + 1)
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("forced pass", func(t *testing.T) {
		blocked := NewPositionFrom([]Cell{0}, nil, true)
		got, err := blocked.PlayChecked(Pass)
		require.NoError(t, err)
		require.True(t, got.IsStale())
	})

	t.Run("finished game", func(t *testing.T) {
		over := NewPositionFrom([]Cell{0}, nil, true).Play(Pass)
		_, err := over.PlayChecked(Pass)
		require.ErrorIs(t, err, ErrGameOver)
	})
}

// Random games from the opening must keep the board consistent at every ply.
func TestRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for game := 0; game < 200; game++ {
		p := NewPosition()
		for ply := 0; !p.IsTerminal(); ply++ {
			require.Less(t, ply, 4*NumCells, "game should end")
			require.Zero(t, p.Black()&p.White(), "sides overlap")
			require.Equal(t, bruteForceLegal(p), p.LegalMask())

			before := p.Black().Count() + p.White().Count()
			move := Pass
			if n := p.NumLegalMoves(); n > 0 {
				move = p.LegalMask().Nth(rng.Intn(n))
			}
			p.Apply(move)

			after := p.Black().Count() + p.White().Count()
			if move == Pass {
				require.Equal(t, before, after)
			} else {
				require.Equal(t, before+1, after, "placement adds exactly one piece")
			}
		}

		score := p.Score()
		switch p.Winner() {
		case Black:
			require.Positive(t, score)
		case White:
			require.Negative(t, score)
		case Draw:
			require.Zero(t, score)
		default:
			t.Fatal("finished game must have a result")
		}
	}
}

// bruteForceLegal applies the definition directly: an empty cell is legal
// when placing there captures something.
func bruteForceLegal(p Position) Bitboard {
	var legal Bitboard
	for c := Cell(0); c < NumCells; c++ {
		if p.Empty().Has(c) && len(p.Flips(c)) > 0 {
			legal = legal.With(c)
		}
	}
	return legal
}

func TestString(t *testing.T) {
	s := NewPosition().String()

	require.Contains(t, s, "Black to move (black 3, white 3)")
	require.Contains(t, s, "x")
	require.Contains(t, s, "*")
}

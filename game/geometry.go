package game

// Slot locates a cell on one of the board lines.
type Slot struct {
	Line   int
	Offset int
}

// lines are the 18 straight rows of the board, six per axis. Captures and
// legal moves are only ever looked for along these rows.
var lines = [18][]Cell{
	// Horizontal
	{40, 35, 34, 33, 32, 31, 26},
	{42, 41, 37, 30, 29, 28, 21, 25, 24},
	{44, 43, 39, 38, 36, 27, 18, 20, 19, 23, 22},
	{49, 50, 46, 47, 45, 0, 9, 11, 12, 16, 17},
	{51, 52, 48, 1, 2, 3, 10, 14, 15},
	{53, 4, 5, 6, 7, 8, 13},

	// Top right to bottom left
	{35, 40, 41, 42, 43, 44, 49},
	{33, 34, 30, 37, 38, 39, 46, 50, 51},
	{31, 32, 28, 29, 27, 36, 45, 47, 48, 52, 53},
	{26, 25, 21, 20, 18, 9, 0, 2, 1, 5, 4},
	{24, 23, 19, 12, 11, 10, 3, 7, 6},
	{22, 17, 16, 15, 14, 13, 8},

	// Top left to bottom right
	{31, 26, 25, 24, 23, 22, 17},
	{33, 32, 28, 21, 20, 19, 12, 16, 15},
	{35, 34, 30, 29, 27, 18, 9, 11, 10, 14, 13},
	{40, 41, 37, 38, 36, 45, 0, 2, 3, 7, 8},
	{42, 43, 39, 46, 47, 48, 1, 5, 6},
	{44, 49, 50, 51, 52, 53, 4},
}

var slots = buildSlots()

func buildSlots() [NumCells][]Slot {
	var s [NumCells][]Slot
	for l, line := range lines {
		for i, c := range line {
			s[c] = append(s[c], Slot{Line: l, Offset: i})
		}
	}
	return s
}

// NumLines is the number of board lines.
func NumLines() int {
	return len(lines)
}

// Line returns the cells of line l in board order. Callers must not modify it.
func Line(l int) []Cell {
	return lines[l]
}

// LinesThrough returns the line slots a cell sits on, in line order.
// Callers must not modify it.
func LinesThrough(c Cell) []Slot {
	if c >= NumCells {
		return nil
	}
	return slots[c]
}

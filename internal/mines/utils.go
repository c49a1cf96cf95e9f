package mines

// Coord addresses a cell by row and column, both zero-based.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// neighbors calls fn for every in-bounds cell of the 3x3 block centred on
// (row, col), excluding the centre.
func neighbors(rows, columns, row, col int, fn func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if 0 <= r && r < rows && 0 <= c && c < columns {
				fn(r, c)
			}
		}
	}
}

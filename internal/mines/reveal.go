package mines

import "fmt"

type OutcomeKind int8

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeRevealed
	OutcomeWon
	OutcomeDetonated
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeRevealed:
		return "revealed"
	case OutcomeWon:
		return "won"
	case OutcomeDetonated:
		return "detonated"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int8(k))
	}
}

// Outcome is what a reveal did to the board. Revealed lists the newly
// uncovered cells in the order they were opened, so a presentation layer
// can repaint just those.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Revealed []Coord     `json:"revealed,omitempty"`
}

func (o Outcome) Changed() bool {
	return o.Kind != OutcomeIgnored
}

// Reveal opens the cell at (row, col). Opening a cell with no mined
// neighbours keeps opening outward until the region is bordered by numbered
// cells. Flagged or revealed cells, and any cell of a finished game, are
// left alone.
func (b *Board) Reveal(row, col int) (Outcome, error) {
	if err := b.checkBounds(row, col); err != nil {
		return Outcome{}, err
	}
	i := b.index(row, col)
	if b.gameOver || b.cells[i].Revealed || b.cells[i].Flagged {
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	if b.cells[i].Mine {
		/*
		 * The player has landed on a mine. Expose the mine that killed
		 * them and nothing else.
		 */
		b.cells[i].Revealed = true
		b.gameOver = true
		b.win = false
		return Outcome{
			Kind:     OutcomeDetonated,
			Revealed: []Coord{{Row: row, Col: col}},
		}, nil
	}

	revealed := b.flood(i)
	b.remaining = b.countCovered()

	if b.remaining == 0 {
		b.win = true
		b.gameOver = true
		Log.Debug("board cleared", "elapsed", b.elapsed)
		return Outcome{Kind: OutcomeWon, Revealed: revealed}, nil
	}
	return Outcome{Kind: OutcomeRevealed, Revealed: revealed}, nil
}

// flood opens the safe cell at index start and everything reachable from it
// through cells with no mined neighbours. It keeps an explicit stack instead
// of recursing; every cell is opened at most once, so the loop is bounded by
// the board size.
func (b *Board) flood(start int) []Coord {
	var (
		revealed []Coord
		stack    = []int{start}
	)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := &b.cells[i]
		if c.Revealed {
			continue
		}
		c.Revealed = true
		if c.Flagged {
			c.Flagged = false
			b.flagCount--
		}
		revealed = append(revealed, b.coord(i))

		if c.NeighborMines != 0 {
			continue
		}
		neighbors(b.rows, b.columns, i/b.columns, i%b.columns, func(r, cc int) {
			j := b.index(r, cc)
			if !b.cells[j].Revealed && !b.cells[j].Mine {
				stack = append(stack, j)
			}
		})
	}
	return revealed
}

// Chord opens every covered, unflagged neighbour of a revealed number whose
// flag count matches the number. It stops at the first reveal that ends the
// game.
func (b *Board) Chord(row, col int) (Outcome, error) {
	if err := b.checkBounds(row, col); err != nil {
		return Outcome{}, err
	}
	c := b.cells[b.index(row, col)]
	if b.gameOver || !c.Revealed || c.NeighborMines == 0 {
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	var (
		flags   int
		pending []Coord
	)
	neighbors(b.rows, b.columns, row, col, func(r, cc int) {
		n := b.cells[b.index(r, cc)]
		switch {
		case n.Flagged:
			flags++
		case !n.Revealed:
			pending = append(pending, Coord{Row: r, Col: cc})
		}
	})
	if flags != c.NeighborMines {
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	total := Outcome{Kind: OutcomeIgnored}
	for _, p := range pending {
		o, err := b.Reveal(p.Row, p.Col)
		if err != nil {
			return total, err
		}
		total.Revealed = append(total.Revealed, o.Revealed...)
		total.Kind = max(total.Kind, o.Kind)
		if b.gameOver {
			break
		}
	}
	return total, nil
}

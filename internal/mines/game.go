package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

type Cell struct {
	Mine          bool `json:"mine"`
	Revealed      bool `json:"revealed"`
	Flagged       bool `json:"flagged"`
	NeighborMines int  `json:"neighbor_mines"`
}

type Status int8

const (
	Active Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int8(s))
	}
}

// Board is a single game. It is not safe for concurrent use: the owner must
// serialize every call.
type Board struct {
	rows, columns int
	mineCount     int
	cells         []Cell /* row-major */

	remaining int /* safe cells still covered */
	flagCount int
	gameOver  bool
	win       bool
	elapsed   int
}

// NewGame lays out a fresh board. Params are clamped first, so this cannot
// fail. A nil r falls back to [NewRand].
func NewGame(params GameParams, r *rand.Rand) *Board {
	if r == nil {
		r = NewRand()
	}
	p := params.Clamp()
	b := newBoard(p.Rows, p.Columns)
	b.layMines(pickMines(p.Cells(), p.MineCount, r))
	b.remaining = b.countCovered()

	Log.Debug("new game",
		slog.Int("rows", b.rows),
		slog.Int("columns", b.columns),
		slog.Int("mines", b.mineCount),
	)
	return b
}

// NewGameWithMines builds a board with mines at exactly the given
// coordinates. Duplicates are ignored. The dimensions are clamped like
// [GameParams.Clamp].
func NewGameWithMines(rows, columns int, mines []Coord) (*Board, error) {
	b := newBoard(clampSide(rows), clampSide(columns))
	mined := make([]int, 0, len(mines))
	for _, m := range mines {
		if !b.InBounds(m.Row, m.Col) {
			return nil, fmt.Errorf("%w: mine at (%d, %d) on %dx%d board",
				ErrOutOfBounds, m.Row, m.Col, b.rows, b.columns)
		}
		mined = append(mined, b.index(m.Row, m.Col))
	}
	b.layMines(mined)
	if b.mineCount >= len(b.cells) {
		return nil, fmt.Errorf("%w: %d mines on %d cells",
			ErrTooManyMines, b.mineCount, len(b.cells))
	}
	b.remaining = b.countCovered()
	return b, nil
}

func newBoard(rows, columns int) *Board {
	return &Board{
		rows:    rows,
		columns: columns,
		cells:   make([]Cell, rows*columns),
	}
}

func (b *Board) index(row, col int) int {
	return row*b.columns + col
}

func (b *Board) coord(i int) Coord {
	return Coord{Row: i / b.columns, Col: i % b.columns}
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.columns
}

func (b *Board) checkBounds(row, col int) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) on %dx%d board",
			ErrOutOfBounds, row, col, b.rows, b.columns)
	}
	return nil
}

// countCovered is the live count of cells that are neither mined nor
// revealed.
func (b *Board) countCovered() (n int) {
	for _, c := range b.cells {
		if !c.Mine && !c.Revealed {
			n++
		}
	}
	return
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Columns() int   { return b.columns }
func (b *Board) MineCount() int { return b.mineCount }

func (b *Board) Params() GameParams {
	return GameParams{Rows: b.rows, Columns: b.columns, MineCount: b.mineCount}
}

// Cell returns a copy of the cell at (row, col).
func (b *Board) Cell(row, col int) (Cell, error) {
	if err := b.checkBounds(row, col); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(row, col)], nil
}

func (b *Board) RemainingSafeCells() int { return b.remaining }
func (b *Board) GameOver() bool          { return b.gameOver }
func (b *Board) Won() bool               { return b.win }
func (b *Board) ElapsedSeconds() int     { return b.elapsed }
func (b *Board) FlagCount() int          { return b.flagCount }

// RemainingMines is the mine counter shown to the player. It goes negative
// when more flags than mines are placed.
func (b *Board) RemainingMines() int {
	return b.mineCount - b.flagCount
}

func (b *Board) Status() Status {
	switch {
	case b.win:
		return Won
	case b.gameOver:
		return Lost
	default:
		return Active
	}
}

// ToggleFlag flips the flag on a covered cell and reports whether anything
// changed. Flags are advisory: they only block [Board.Reveal].
func (b *Board) ToggleFlag(row, col int) (bool, error) {
	if err := b.checkBounds(row, col); err != nil {
		return false, err
	}
	if b.gameOver {
		return false, nil
	}
	c := &b.cells[b.index(row, col)]
	if c.Revealed {
		return false, nil
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		b.flagCount++
	} else {
		b.flagCount--
	}
	return true, nil
}

// Tick advances the play clock by one second unless the game is over, and
// returns the elapsed time.
func (b *Board) Tick() int {
	if !b.gameOver {
		b.elapsed++
	}
	return b.elapsed
}

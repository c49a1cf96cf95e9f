package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Unknown       CellStatus = -2
	Flag          CellStatus = -1
	CorrectFlag   CellStatus = 64 // post-game-over
	ExplodedMine  CellStatus = 65
	WrongFlag     CellStatus = 66
	UnflaggedMine CellStatus = 67
	// 0-8 for an open cell with the given number of mined neighbours
)

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return "."
	case Flag, CorrectFlag:
		return "F"
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "x"
	case UnflaggedMine:
		return "*"
	case 0:
		return " "
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is the board as the player is allowed to see it, row-major.
type Grid []CellStatus

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// PlayerGrid masks the board for display. Mines stay hidden while the game
// is on; once it is over the remaining mines and flag verdicts are shown.
// The board itself is not touched.
func (b *Board) PlayerGrid() Grid {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		grid[i] = b.cellStatus(c)
	}
	return grid
}

func (b *Board) cellStatus(c Cell) CellStatus {
	switch {
	case c.Revealed && c.Mine:
		return ExplodedMine
	case c.Revealed:
		return CellStatus(c.NeighborMines)
	case b.win && c.Mine:
		return CorrectFlag
	case !b.gameOver && c.Flagged:
		return Flag
	case !b.gameOver:
		return Unknown
	case c.Flagged && c.Mine:
		return CorrectFlag
	case c.Flagged:
		return WrongFlag
	case c.Mine:
		return UnflaggedMine
	default:
		return Unknown
	}
}

func (b *Board) String() string {
	return b.PlayerGrid().ToString(b.columns)
}

package mines

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortCoords(cs []Coord) []Coord {
	out := slices.Clone(cs)
	slices.SortFunc(out, func(a, b Coord) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return out
}

// expectedRegion computes, with a plain recursive search, what revealing the
// safe cell at start must uncover.
func expectedRegion(b *Board, start Coord) []Coord {
	seen := make([]bool, len(b.cells))
	var visit func(r, c int)
	visit = func(r, c int) {
		i := b.index(r, c)
		if seen[i] || b.cells[i].Revealed || b.cells[i].Mine {
			return
		}
		seen[i] = true
		if b.cells[i].NeighborMines == 0 {
			neighbors(b.rows, b.columns, r, c, visit)
		}
	}
	visit(start.Row, start.Col)

	var out []Coord
	for i, s := range seen {
		if s {
			out = append(out, b.coord(i))
		}
	}
	return out
}

func TestRevealSingleCellWins(t *testing.T) {
	b := NewGame(GameParams{Rows: 1, Columns: 1, MineCount: 0}, rand.New(rand.NewPCG(1, 2)))

	o, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWon, o.Kind)
	assert.Equal(t, []Coord{{0, 0}}, o.Revealed)
	assert.Equal(t, 0, b.RemainingSafeCells())
	assert.True(t, b.Won())
	assert.True(t, b.GameOver())
	assert.Equal(t, Won, b.Status())
	checkBoard(t, b)
}

func TestRevealNumberDoesNotSpread(t *testing.T) {
	b := mustBoard(t, 3, 3, Coord{1, 1})

	c, _ := b.Cell(0, 0)
	require.Equal(t, 1, c.NeighborMines)

	o, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRevealed, o.Kind)
	assert.Equal(t, []Coord{{0, 0}}, o.Revealed)
	assert.Equal(t, []Coord{{0, 0}}, revealedSet(b))
	assert.False(t, b.GameOver())
	assert.Equal(t, 7, b.RemainingSafeCells())
	checkBoard(t, b)
}

func TestRevealStopsAtBorder(t *testing.T) {
	// . 1 * 1 .
	b := mustBoard(t, 1, 5, Coord{0, 2})

	o, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRevealed, o.Kind)
	assert.Equal(t, []Coord{{0, 0}, {0, 1}}, sortCoords(o.Revealed))
	assert.Equal(t, 2, b.RemainingSafeCells())

	o, err = b.Reveal(0, 4)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWon, o.Kind)
	assert.Equal(t, []Coord{{0, 3}, {0, 4}}, sortCoords(o.Revealed))
	c, _ := b.Cell(0, 2)
	assert.False(t, c.Revealed, "flood fill must not open mines")
	checkBoard(t, b)
}

func TestRevealFloodFill(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 8))
	for range 200 {
		b := NewGame(GameParams{Rows: 12, Columns: 15, MineCount: 25}, r)

		// Reveal every safe cell in a random order; each reveal must open
		// exactly the region a recursive search predicts.
		order := r.Perm(len(b.cells))
		for _, i := range order {
			if b.cells[i].Mine || b.cells[i].Revealed {
				continue
			}
			start := b.coord(i)
			want := expectedRegion(b, start)

			o, err := b.Reveal(start.Row, start.Col)
			require.NoError(t, err)
			require.NotEqual(t, OutcomeIgnored, o.Kind)
			require.Equal(t, want, sortCoords(o.Revealed))
			for _, p := range o.Revealed {
				c, _ := b.Cell(p.Row, p.Col)
				require.False(t, c.Mine)
			}
			checkBoard(t, b)
		}

		assert.True(t, b.Won())
		assert.True(t, b.GameOver())
		assert.Zero(t, b.RemainingSafeCells())
	}
}

func TestRevealZeroRegionWithBorder(t *testing.T) {
	// Mine in the far corner: one reveal from the opposite corner opens
	// every safe cell.
	b := mustBoard(t, 5, 5, Coord{4, 4})

	o, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWon, o.Kind)
	assert.Len(t, o.Revealed, 24)
	assert.Equal(t, expectedOpenAllBut(b, Coord{4, 4}), sortCoords(o.Revealed))
	checkBoard(t, b)
}

func expectedOpenAllBut(b *Board, skip Coord) []Coord {
	var out []Coord
	for i := range b.cells {
		if p := b.coord(i); p != skip {
			out = append(out, p)
		}
	}
	return out
}

func TestRevealMine(t *testing.T) {
	b := mustBoard(t, 4, 4, Coord{0, 0}, Coord{3, 3})
	_, err := b.ToggleFlag(2, 2)
	require.NoError(t, err)
	b.Tick()

	before := slices.Clone(b.cells)
	remaining := b.RemainingSafeCells()

	o, err := b.Reveal(3, 3)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDetonated, o.Kind)
	assert.Equal(t, []Coord{{3, 3}}, o.Revealed)
	assert.True(t, b.GameOver())
	assert.False(t, b.Won())
	assert.Equal(t, Lost, b.Status())
	assert.Equal(t, remaining, b.RemainingSafeCells())

	for i := range b.cells {
		if b.coord(i) == (Coord{3, 3}) {
			assert.True(t, b.cells[i].Revealed)
			continue
		}
		assert.Equal(t, before[i], b.cells[i], "cell %v changed", b.coord(i))
	}
	checkBoard(t, b)
}

func TestRevealIgnored(t *testing.T) {
	b := mustBoard(t, 3, 3, Coord{1, 1})

	_, err := b.ToggleFlag(0, 0)
	require.NoError(t, err)
	o, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, o.Kind)
	assert.False(t, o.Changed())
	c, _ := b.Cell(0, 0)
	assert.False(t, c.Revealed)

	_, err = b.Reveal(2, 2)
	require.NoError(t, err)
	o, err = b.Reveal(2, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, o.Kind)
	assert.Empty(t, o.Revealed)
	checkBoard(t, b)
}

func TestFloodClearsFlags(t *testing.T) {
	b := mustBoard(t, 3, 3, Coord{2, 2})
	_, err := b.ToggleFlag(0, 2)
	require.NoError(t, err)
	require.Equal(t, 1, b.FlagCount())

	o, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWon, o.Kind)

	c, _ := b.Cell(0, 2)
	assert.True(t, c.Revealed)
	assert.False(t, c.Flagged)
	assert.Zero(t, b.FlagCount())
	checkBoard(t, b)
}

func TestFrozenAfterGameOver(t *testing.T) {
	tests := []struct {
		name  string
		board func(t *testing.T) *Board
		end   Coord
	}{
		{
			name:  "lost",
			board: func(t *testing.T) *Board { return mustBoard(t, 3, 3, Coord{1, 1}) },
			end:   Coord{1, 1},
		},
		{
			name:  "won",
			board: func(t *testing.T) *Board { return mustBoard(t, 3, 3, Coord{1, 1}, Coord{0, 1}) },
			end:   Coord{2, 2},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := test.board(t)
			if test.name == "won" {
				for _, p := range []Coord{{0, 0}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}} {
					_, err := b.Reveal(p.Row, p.Col)
					require.NoError(t, err)
				}
			}
			b.Tick()
			_, err := b.Reveal(test.end.Row, test.end.Col)
			require.NoError(t, err)
			require.True(t, b.GameOver())

			before := slices.Clone(b.cells)
			status := b.Status()
			elapsed := b.ElapsedSeconds()

			for r := range 3 {
				for c := range 3 {
					o, err := b.Reveal(r, c)
					require.NoError(t, err)
					assert.Equal(t, OutcomeIgnored, o.Kind)

					changed, err := b.ToggleFlag(r, c)
					require.NoError(t, err)
					assert.False(t, changed)

					o, err = b.Chord(r, c)
					require.NoError(t, err)
					assert.Equal(t, OutcomeIgnored, o.Kind)
				}
			}
			assert.Equal(t, elapsed, b.Tick())

			assert.Equal(t, before, b.cells)
			assert.Equal(t, status, b.Status())
			assert.Equal(t, elapsed, b.ElapsedSeconds())
		})
	}
}

func TestChord(t *testing.T) {
	// row 0: * 2 *
	// row 1: 1 2 1
	// row 2: 0 0 0
	b := mustBoard(t, 3, 3, Coord{0, 0}, Coord{0, 2})

	_, err := b.Reveal(1, 1)
	require.NoError(t, err)

	// Not enough flags yet.
	o, err := b.Chord(1, 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, o.Kind)

	for _, p := range []Coord{{0, 0}, {0, 2}} {
		_, err := b.ToggleFlag(p.Row, p.Col)
		require.NoError(t, err)
	}

	o, err = b.Chord(1, 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWon, o.Kind)
	assert.ElementsMatch(t,
		[]Coord{{0, 1}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
		o.Revealed,
	)
	assert.True(t, b.Won())
	checkBoard(t, b)
}

func TestChordWrongFlag(t *testing.T) {
	b := mustBoard(t, 3, 3, Coord{0, 0})

	_, err := b.Reveal(1, 1)
	require.NoError(t, err)
	_, err = b.ToggleFlag(2, 2)
	require.NoError(t, err)

	o, err := b.Chord(1, 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDetonated, o.Kind)
	assert.Contains(t, o.Revealed, Coord{0, 0})
	assert.Equal(t, Lost, b.Status())
	checkBoard(t, b)
}

func TestChordIgnored(t *testing.T) {
	b := mustBoard(t, 3, 3, Coord{0, 0})

	// Covered cell.
	o, err := b.Chord(2, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, o.Kind)

	// Zero cell.
	_, err = b.Reveal(2, 2)
	require.NoError(t, err)
	o, err = b.Chord(2, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, o.Kind)
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "ignored", OutcomeIgnored.String())
	assert.Equal(t, "revealed", OutcomeRevealed.String())
	assert.Equal(t, "won", OutcomeWon.String())
	assert.Equal(t, "detonated", OutcomeDetonated.String())
}

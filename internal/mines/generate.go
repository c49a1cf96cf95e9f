package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// NewRand returns a generator seeded from the runtime's hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// pickMines chooses mineCount distinct cell indices out of cells, uniformly
// and without replacement.
func pickMines(cells, mineCount int, r *rand.Rand) []int {
	/*
	 * Write down the list of possible mine locations, then pick n off the
	 * list at random. Each pick swaps the last live candidate into the
	 * chosen slot, which is a Fisher-Yates shuffle stopped after n steps.
	 */
	candidates := make([]int, cells)
	for i := range candidates {
		candidates[i] = i
	}

	picked := make([]int, 0, mineCount)
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		picked = append(picked, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return picked
}

// layMines marks every index in mined as a mine and bumps the neighbour
// counts around it. Indices already mined are skipped.
func (b *Board) layMines(mined []int) {
	for _, i := range mined {
		if b.cells[i].Mine {
			continue
		}
		b.cells[i].Mine = true
		b.mineCount++
		neighbors(b.rows, b.columns, i/b.columns, i%b.columns, func(r, c int) {
			b.cells[r*b.columns+c].NeighborMines++
		})
	}
}

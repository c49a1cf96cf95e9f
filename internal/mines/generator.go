package mines

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// GameParams describes a board before it is generated. Values outside the
// playable range are clamped by [GameParams.Clamp], never rejected.
type GameParams struct {
	Rows      int `json:"rows"`
	Columns   int `json:"columns"`
	MineCount int `json:"mine_count"`
}

// MaxSide bounds the rows and columns of a board so that the cell count
// neither overflows nor outgrows memory.
const MaxSide = 1024

var ErrUnknownPreset = errors.New("unknown preset")

var presets = map[string]GameParams{
	"beginner":     {Rows: 9, Columns: 9, MineCount: 10},
	"intermediate": {Rows: 16, Columns: 16, MineCount: 40},
	"expert":       {Rows: 16, Columns: 30, MineCount: 99},
	"classic":      {Rows: 16, Columns: 12, MineCount: 32},
}

// Default is the board a fresh session starts with.
var Default = presets["classic"]

func Preset(name string) (GameParams, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return GameParams{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// PresetNames lists the known presets in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WithDensity computes the mine count as a fraction of the cell count,
// rounded to the nearest integer. The result is clamped.
func WithDensity(rows, columns int, density float64) GameParams {
	p := GameParams{Rows: rows, Columns: columns}.Clamp()
	if math.IsNaN(density) {
		density = 0
	}
	density = min(1, max(0, density))
	p.MineCount = int(math.Round(density * float64(p.Cells())))
	return p.Clamp()
}

func (p GameParams) Cells() int {
	return p.Rows * p.Columns
}

// Clamp returns params that describe a playable board: between one and
// MaxSide rows and columns, and at least one safe cell.
func (p GameParams) Clamp() GameParams {
	p.Rows = clampSide(p.Rows)
	p.Columns = clampSide(p.Columns)
	p.MineCount = max(0, min(p.MineCount, p.Cells()-1))
	return p
}

func clampSide(n int) int {
	return min(MaxSide, max(1, n))
}

// Density is the share of cells holding a mine.
func (p GameParams) Density() float64 {
	if p.Cells() <= 0 {
		return 0
	}
	return float64(p.MineCount) / float64(p.Cells())
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Columns, p.MineCount)
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Columns, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Rows, &p.Columns, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vancomm/minesweeper-board/internal/mines"
)

// Difficulty reads the board the player starts with. MINES_PRESET wins over
// explicit dimensions; MINES_DENSITY wins over MINES_COUNT. Missing values
// fall back to mines.Default.
func Difficulty() (mines.GameParams, error) {
	if preset, ok := os.LookupEnv("MINES_PRESET"); ok {
		return mines.Preset(preset)
	}

	params := mines.Default
	var err error

	if params.Rows, err = lookupInt("MINES_ROWS", params.Rows); err != nil {
		return mines.GameParams{}, err
	}
	if params.Columns, err = lookupInt("MINES_COLUMNS", params.Columns); err != nil {
		return mines.GameParams{}, err
	}

	densityStr, ok := os.LookupEnv("MINES_DENSITY")
	if ok {
		density, err := strconv.ParseFloat(densityStr, 64)
		if err != nil {
			return mines.GameParams{}, fmt.Errorf("unable to convert MINES_DENSITY to float: %w", err)
		}
		return mines.WithDensity(params.Rows, params.Columns, density), nil
	}

	if params.MineCount, err = lookupInt("MINES_COUNT", params.MineCount); err != nil {
		return mines.GameParams{}, err
	}
	return params.Clamp(), nil
}

func lookupInt(key string, fallback int) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return n, nil
}

func SQLitePath() string {
	path, ok := os.LookupEnv("MINES_SQLITE_PATH")
	if !ok {
		return "minesweeper.db"
	}
	return path
}

package main

import (
	"github.com/urfave/cli/v3"

	"github.com/vancomm/minesweeper-board/internal/config"
	"github.com/vancomm/minesweeper-board/internal/mines"
)

func paramFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "preset", Usage: "one of beginner, classic, expert, intermediate"},
		&cli.StringFlag{Name: "seed", Usage: "board params as rows:cols:mines"},
		&cli.IntFlag{Name: "rows", Usage: "board height"},
		&cli.IntFlag{Name: "cols", Usage: "board width"},
		&cli.IntFlag{Name: "mines", Usage: "number of mines"},
		&cli.FloatFlag{Name: "density", Usage: "fraction of cells that are mines, overrides --mines"},
	}
}

func paramsSet(cmd *cli.Command) bool {
	for _, name := range []string{"preset", "seed", "rows", "cols", "mines", "density"} {
		if cmd.IsSet(name) {
			return true
		}
	}
	return false
}

// gameParams layers the flags over the environment: seed, then preset, then
// the individual dimensions.
func gameParams(cmd *cli.Command) (mines.GameParams, error) {
	params, err := config.Difficulty()
	if err != nil {
		return mines.GameParams{}, err
	}
	if cmd.IsSet("seed") {
		p, err := mines.ParseSeed(cmd.String("seed"))
		if err != nil {
			return mines.GameParams{}, err
		}
		params = *p
	}
	if cmd.IsSet("preset") {
		if params, err = mines.Preset(cmd.String("preset")); err != nil {
			return mines.GameParams{}, err
		}
	}
	if cmd.IsSet("rows") {
		params.Rows = int(cmd.Int("rows"))
	}
	if cmd.IsSet("cols") {
		params.Columns = int(cmd.Int("cols"))
	}
	if cmd.IsSet("density") {
		return mines.WithDensity(params.Rows, params.Columns, cmd.Float("density")), nil
	}
	if cmd.IsSet("mines") {
		params.MineCount = int(cmd.Int("mines"))
	}
	return params.Clamp(), nil
}

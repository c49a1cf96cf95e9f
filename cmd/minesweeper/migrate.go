package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/vancomm/minesweeper-board/internal/config"
	"github.com/vancomm/minesweeper-board/internal/database"
)

func (app *application) migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or upgrade the postgres records schema",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			url, err := config.DbURL()
			if err != nil {
				return err
			}
			version, dirty, err := database.Migrate(url, database.Migrations)
			if err != nil {
				return err
			}
			app.logger.Info("migration successful",
				slog.Uint64("version", uint64(version)),
				slog.Bool("dirty", dirty),
			)
			return nil
		},
	}
}

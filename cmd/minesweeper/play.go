package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-board/internal/clock"
	"github.com/vancomm/minesweeper-board/internal/commands"
	"github.com/vancomm/minesweeper-board/internal/config"
	"github.com/vancomm/minesweeper-board/internal/database"
	"github.com/vancomm/minesweeper-board/internal/records"
	"github.com/vancomm/minesweeper-board/internal/session"
)

// openStore prefers Postgres when one is configured, bringing its schema up
// to date first, and keeps records in a local SQLite file otherwise.
func (app *application) openStore(ctx context.Context) (records.Store, error) {
	if config.HasDatabase() {
		pool, err := database.ConnectAndMigrate(ctx, database.Migrations)
		if err != nil {
			return nil, err
		}
		app.logger.Debug("records in postgres")
		return records.NewPostgres(pool), nil
	}
	path := config.SQLitePath()
	app.logger.Debug("records in sqlite", slog.String("path", path))
	return records.OpenSQLite(ctx, path)
}

func (app *application) playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "start a game; type o, f, c, n, p or q followed by enter",
		Flags: append(paramFlags(),
			&cli.BoolFlag{Name: "no-records", Usage: "do not keep the result"},
		),
		Action: app.play,
	}
}

func (app *application) play(ctx context.Context, cmd *cli.Command) error {
	params, err := gameParams(cmd)
	if err != nil {
		return err
	}

	var store records.Store = records.Discard{}
	if !cmd.Bool("no-records") {
		if store, err = app.openStore(ctx); err != nil {
			return err
		}
	}
	defer store.Close()

	s := session.New(app.logger, nil, store, params)
	unsubscribe := s.Subscribe(func(u session.Update) {
		if u.Event == session.EventTick {
			return
		}
		app.logger.Debug("update",
			slog.String("event", u.Event.String()),
			slog.String("status", u.Status.String()),
			slog.Int("remaining", u.RemainingSafeCells),
		)
	})
	defer unsubscribe()

	in := commands.New(s, os.Stdout, app.logger)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return clock.New(0).Run(gCtx, s)
	})
	g.Go(func() error {
		return in.Run(gCtx, os.Stdin)
	})

	err = g.Wait()
	if errors.Is(err, commands.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

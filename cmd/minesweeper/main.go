package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vancomm/minesweeper-board/internal/config"
)

type application struct {
	logger *slog.Logger
	logOut io.Closer
}

// newLogger logs to stderr with colors in development. Otherwise the
// terminal belongs to the game and JSON goes to a rotated file.
func newLogger(development bool, logFile string) (*slog.Logger, io.Closer) {
	if development {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		), nil
	}
	out := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	return slog.New(slog.NewJSONHandler(out, nil)), out
}

func (app *application) command() *cli.Command {
	return &cli.Command{
		Name:  "minesweeper",
		Usage: "play minesweeper in the terminal",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "log at debug level to stderr (or set DEVELOPMENT=1)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "log file outside development (or set MINES_LOG_FILE)",
				Value: config.LogFile(),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			development := cmd.Bool("dev") || config.Development()
			app.logger, app.logOut = newLogger(development, cmd.String("log-file"))
			app.logger.Debug("starting up", slog.Bool("development", development))
			return ctx, nil
		},
		Commands: []*cli.Command{
			app.playCommand(),
			app.scoresCommand(),
			app.migrateCommand(),
		},
	}
}

func (app *application) closeLog() {
	if app.logOut != nil {
		app.logOut.Close()
	}
}

func main() {
	os.Exit(run(os.Args, os.Stderr))
}

// run returns the process exit code. The log file is closed only after the
// final error has been logged.
func run(args []string, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("unable to load .env file: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &application{logger: slog.Default()}
	defer app.closeLog()

	if err := app.command().Run(ctx, args); err != nil {
		app.logger.Error("exit", slog.Any("error", err))
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

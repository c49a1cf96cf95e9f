package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/vancomm/minesweeper-board/internal/records"
)

func (app *application) scoresCommand() *cli.Command {
	return &cli.Command{
		Name:  "scores",
		Usage: "list the best finished games",
		Flags: append(paramFlags(),
			&cli.BoolFlag{Name: "all", Usage: "include lost games"},
			&cli.IntFlag{Name: "limit", Usage: "number of games to list", Value: records.DefaultLimit},
		),
		Action: app.scores,
	}
}

func (app *application) scores(ctx context.Context, cmd *cli.Command) error {
	filter := records.Filter{
		WonOnly: !cmd.Bool("all"),
		Limit:   int(cmd.Int("limit")),
	}
	if paramsSet(cmd) {
		params, err := gameParams(cmd)
		if err != nil {
			return err
		}
		filter.Params = &params
	}

	store, err := app.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	best, err := store.Best(ctx, filter)
	if err != nil {
		return fmt.Errorf("unable to fetch records: %w", err)
	}
	return printRecords(os.Stdout, best)
}

func printRecords(w io.Writer, rs []records.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tboard\tresult\ttime\tfinished")
	for i, r := range rs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%ds\t%s\n",
			i+1, r.Params(), result, r.ElapsedSeconds,
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return tw.Flush()
}

// Package commands reads the text protocol a terminal player types. A line
// holds one or more commands separated by ";":
//
//	o <row> <col>                  reveal
//	f <row> <col>                  toggle flag
//	c <row> <col>                  chord
//	n [preset | rows cols mines | rows cols density%]
//	                               new game
//	p                              print the board
//	q                              quit
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-board/internal/mines"
	"github.com/vancomm/minesweeper-board/internal/session"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgumentCount  = errors.New("invalid number of arguments")
	ErrBadArgument    = errors.New("bad argument")
)

// Game is the part of a session the interpreter drives.
type Game interface {
	NewGame(params mines.GameParams)
	Reveal(ctx context.Context, row, col int) (mines.Outcome, error)
	Chord(ctx context.Context, row, col int) (mines.Outcome, error)
	ToggleFlag(row, col int) (bool, error)
	Snapshot() session.View
}

// Maps known commands to the accepted numbers of arguments
var commandNargs = map[string][]int{
	"o": {2},
	"f": {2},
	"c": {2},
	"n": {0, 1, 3},
	"p": {0},
	"q": {0},
}

type Interpreter struct {
	game   Game
	out    io.Writer
	logger *slog.Logger
}

func New(game Game, out io.Writer, logger *slog.Logger) *Interpreter {
	return &Interpreter{game: game, out: out, logger: logger}
}

// Execute runs every command on the line in order and stops at the first
// error. The board is printed once afterwards if anything changed.
func (in *Interpreter) Execute(ctx context.Context, line string) error {
	dirty := false
	defer func() {
		if dirty {
			in.Print()
		}
	}()

	for _, c := range byPiece(line, ";") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		changed, err := in.execute(ctx, c)
		dirty = dirty || changed
		if err != nil {
			return err
		}
	}
	return nil
}

// Run reads commands from r until q, end of input or cancellation. Command
// errors are reported to the player and do not stop the loop. Both q and end
// of input return ErrQuit.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
		close(lines)
	}()

	in.Print()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return fmt.Errorf("unable to read commands: %w", err)
				}
				return ErrQuit
			}
			err := in.Execute(ctx, line)
			if errors.Is(err, ErrQuit) {
				return err
			}
			if err != nil {
				in.logger.Debug("command failed", slog.String("line", line), slog.Any("error", err))
				fmt.Fprintf(in.out, "error: %s\n", err)
			}
		}
	}
}

// Print writes the player grid, the counters and the board params.
func (in *Interpreter) Print() {
	v := in.game.Snapshot()
	fmt.Fprint(in.out, v.Board())
	fmt.Fprintf(in.out, "mines: %d  left: %d  time: %ds  %s  [%s %.1f%%]\n",
		v.RemainingMines, v.RemainingSafeCells, v.ElapsedSeconds, v.Status,
		v.Params, 100*v.Params.Density())
}

func (in *Interpreter) execute(ctx context.Context, c string) (changed bool, err error) {
	parts := strings.Fields(c)
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if !slices.Contains(nargs, len(parts)-1) {
		return false, fmt.Errorf("%w: %q takes %v, got %d", ErrArgumentCount, parts[0], nargs, len(parts)-1)
	}

	args := parts[1:]
	switch parts[0] {
	case "o":
		return in.open(ctx, args, in.game.Reveal)
	case "c":
		return in.open(ctx, args, in.game.Chord)
	case "f":
		row, col, err := parseRowCol(args)
		if err != nil {
			return false, err
		}
		return in.game.ToggleFlag(row, col)
	case "n":
		params, err := parseParams(args, in.game.Snapshot().Params)
		if err != nil {
			return false, err
		}
		in.game.NewGame(params)
		return true, nil
	case "p":
		in.Print()
		return false, nil
	case "q":
		return false, ErrQuit
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
}

func (in *Interpreter) open(
	ctx context.Context,
	args []string,
	fn func(ctx context.Context, row, col int) (mines.Outcome, error),
) (bool, error) {
	row, col, err := parseRowCol(args)
	if err != nil {
		return false, err
	}
	outcome, err := fn(ctx, row, col)
	switch outcome.Kind {
	case mines.OutcomeWon:
		fmt.Fprintln(in.out, "you won")
	case mines.OutcomeDetonated:
		fmt.Fprintln(in.out, "boom")
	}
	return outcome.Changed(), err
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: row must be an int, got %q", ErrBadArgument, args[0])
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: column must be an int, got %q", ErrBadArgument, args[1])
	}
	return row, col, nil
}

// parseParams reads the arguments of n. Without arguments the current
// params are reused.
func parseParams(args []string, current mines.GameParams) (mines.GameParams, error) {
	switch len(args) {
	case 0:
		return current, nil
	case 1:
		p, err := mines.Preset(args[0])
		if err != nil {
			return mines.GameParams{}, fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
		return p, nil
	}

	rows, err := strconv.Atoi(args[0])
	if err != nil {
		return mines.GameParams{}, fmt.Errorf("%w: rows must be an int, got %q", ErrBadArgument, args[0])
	}
	columns, err := strconv.Atoi(args[1])
	if err != nil {
		return mines.GameParams{}, fmt.Errorf("%w: columns must be an int, got %q", ErrBadArgument, args[1])
	}

	if pct, ok := strings.CutSuffix(args[2], "%"); ok {
		density, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return mines.GameParams{}, fmt.Errorf("%w: density must be a number, got %q", ErrBadArgument, args[2])
		}
		return mines.WithDensity(rows, columns, density/100), nil
	}

	mineCount, err := strconv.Atoi(args[2])
	if err != nil {
		return mines.GameParams{}, fmt.Errorf("%w: mines must be an int, got %q", ErrBadArgument, args[2])
	}
	return mines.GameParams{Rows: rows, Columns: columns, MineCount: mineCount}.Clamp(), nil
}

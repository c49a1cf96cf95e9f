// Package records keeps the results of finished games for the best-times
// table. Only outcomes are stored; a board is never saved.
package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vancomm/minesweeper-board/internal/mines"
)

const DefaultLimit = 10

var (
	ErrDuplicate = errors.New("record already exists")
	ErrBadTable  = errors.New("bad name for records table")
)

type Record struct {
	ID             string    `json:"id" db:"record_id"`
	Rows           int       `json:"rows" db:"row_count"`
	Columns        int       `json:"columns" db:"column_count"`
	MineCount      int       `json:"mine_count" db:"mine_count"`
	Won            bool      `json:"won" db:"won"`
	ElapsedSeconds int       `json:"elapsed_seconds" db:"elapsed_seconds"`
	FinishedAt     time.Time `json:"finished_at" db:"finished_at"`
}

func (r Record) Params() mines.GameParams {
	return mines.GameParams{Rows: r.Rows, Columns: r.Columns, MineCount: r.MineCount}
}

type Store interface {
	Save(ctx context.Context, r Record) error
	Best(ctx context.Context, f Filter) ([]Record, error)
	Close() error
}

type Filter struct {
	Params  *mines.GameParams
	WonOnly bool
	Limit   int
}

func (f Filter) WhereClause() (string, map[string]any) {
	clauses := make([]string, 0)
	args := map[string]any{}
	if f.WonOnly {
		clauses = append(clauses, "won = @won")
		args["won"] = true
	}
	if f.Params != nil {
		clauses = append(
			clauses,
			"row_count = @row_count",
			"column_count = @column_count",
			"mine_count = @mine_count",
		)
		args["row_count"] = f.Params.Rows
		args["column_count"] = f.Params.Columns
		args["mine_count"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

// query builds the best-times select for table: wins first, then the
// fastest, then the oldest.
func (f Filter) query(table string) (string, map[string]any) {
	query := `
	SELECT
		record_id,
		row_count,
		column_count,
		mine_count,
		won,
		elapsed_seconds,
		finished_at
	FROM ` + table

	whereClause, args := f.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	args["limit"] = limit

	query += " ORDER BY won DESC, elapsed_seconds, finished_at LIMIT @limit;"
	return query, args
}

func isLetters(s string) bool {
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_') {
			return false
		}
	}
	return s != ""
}

// Discard drops every record.
type Discard struct{}

func (Discard) Save(context.Context, Record) error            { return nil }
func (Discard) Best(context.Context, Filter) ([]Record, error) { return nil, nil }
func (Discard) Close() error                                  { return nil }

package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores records in the game_record table created by the
// migrations in internal/database.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Save(ctx context.Context, r Record) error {
	_, err := p.db.Exec(
		ctx,
		`INSERT INTO game_record (
			record_id, row_count, column_count, mine_count, won, elapsed_seconds, finished_at
		)
		VALUES (
			@record_id, @row_count, @column_count, @mine_count, @won, @elapsed_seconds, @finished_at
		);`,
		pgx.NamedArgs{
			"record_id":       r.ID,
			"row_count":       r.Rows,
			"column_count":    r.Columns,
			"mine_count":      r.MineCount,
			"won":             r.Won,
			"elapsed_seconds": r.ElapsedSeconds,
			"finished_at":     r.FinishedAt,
		},
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, r.ID)
	}
	return err
}

func (p *Postgres) Best(ctx context.Context, f Filter) ([]Record, error) {
	query, args := f.query("game_record")
	rows, err := p.db.Query(ctx, query, pgx.NamedArgs(args))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}

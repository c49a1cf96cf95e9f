package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// SQLite stores records in a local database file.
type SQLite struct {
	name string
	db   *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db: %w", err)
	}
	s, err := NewSQLite(ctx, db, "game_record")
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite creates the records table if it is missing. name may only
// contain Latin letters and underscores.
func NewSQLite(ctx context.Context, db *sql.DB, name string) (*SQLite, error) {
	if !isLetters(name) {
		return nil, ErrBadTable
	}

	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+name+` (
	record_id		TEXT	PRIMARY KEY,
	row_count		INTEGER	NOT NULL,
	column_count	INTEGER	NOT NULL,
	mine_count		INTEGER	NOT NULL,
	won				BOOLEAN	NOT NULL,
	elapsed_seconds	INTEGER	NOT NULL,
	finished_at		TIMESTAMP NOT NULL
);`)
	if err != nil {
		return nil, fmt.Errorf("unable to create %s table: %w", name, err)
	}
	return &SQLite{name: name, db: db}, nil
}

func (s *SQLite) Save(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (
	record_id, row_count, column_count, mine_count, won, elapsed_seconds, finished_at
)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
		r.ID, r.Rows, r.Columns, r.MineCount, r.Won, r.ElapsedSeconds, r.FinishedAt.UTC(),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %s", ErrDuplicate, r.ID)
	}
	return err
}

func (s *SQLite) Best(ctx context.Context, f Filter) ([]Record, error) {
	query, named := f.query(s.name)
	args := make([]any, 0, len(named))
	for k, v := range named {
		args = append(args, sql.Named(k, v))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		err := rows.Scan(
			&r.ID, &r.Rows, &r.Columns, &r.MineCount,
			&r.Won, &r.ElapsedSeconds, &r.FinishedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

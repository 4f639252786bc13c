package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultQuery selects the corpus lines of a SQLite database.
const DefaultQuery = "SELECT text FROM tweets ORDER BY rowid"

// SQLiteSource yields the first column of every row returned by a query.
// NULL values are returned as empty lines.
type SQLiteSource struct {
	db   *sql.DB
	rows *sql.Rows
}

// OpenSQLite opens the database at path and runs query against it. An empty
// query selects DefaultQuery. The database must already exist.
func OpenSQLite(ctx context.Context, path, query string) (*SQLiteSource, error) {
	if query == "" {
		query = DefaultQuery
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to query corpus: %w", err)
	}
	return &SQLiteSource{db: db, rows: rows}, nil
}

// Next returns the next row's text, or io.EOF after the last row.
func (s *SQLiteSource) Next() (string, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return "", fmt.Errorf("failed to iterate corpus rows: %w", err)
		}
		return "", io.EOF
	}
	var text sql.NullString
	if err := s.rows.Scan(&text); err != nil {
		return "", fmt.Errorf("failed to scan corpus row: %w", err)
	}
	return text.String, nil
}

// Close releases the query and the database handle.
func (s *SQLiteSource) Close() error {
	return errors.Join(s.rows.Close(), s.db.Close())
}

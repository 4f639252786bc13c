package corpus

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/CTAG07/tweetsgen/pkg/markov"
)

// setupTestDB creates a SQLite corpus database with the given tweets in a
// temporary directory and returns its path.
func setupTestDB(t *testing.T, tweets ...any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweets.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	if _, err = db.Exec("CREATE TABLE tweets (id INTEGER PRIMARY KEY, author TEXT, text TEXT)"); err != nil {
		t.Fatalf("Failed to create tweets table: %v", err)
	}
	for _, tweet := range tweets {
		if _, err = db.Exec("INSERT INTO tweets (author, text) VALUES (?, ?)", "someone", tweet); err != nil {
			t.Fatalf("Failed to insert tweet: %v", err)
		}
	}
	return path
}

func TestSQLiteSource(t *testing.T) {
	path := setupTestDB(t, "the cat sat.", nil, "the dog ran.")

	src, err := OpenSQLite(context.Background(), path, "")
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer src.Close()

	lines, err := markov.ReadLines(src)
	if err != nil {
		t.Fatalf("ReadLines() failed: %v", err)
	}
	want := []string{"the cat sat.", "", "the dog ran."}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %q, want %q", lines, want)
	}
}

func TestSQLiteSourceCustomQuery(t *testing.T) {
	path := setupTestDB(t, "first tweet.", "second tweet.")

	src, err := OpenSQLite(context.Background(), path, "SELECT text FROM tweets ORDER BY id DESC LIMIT 1")
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer src.Close()

	lines, err := markov.ReadLines(src)
	if err != nil {
		t.Fatalf("ReadLines() failed: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"second tweet."}) {
		t.Errorf("lines = %q, want [second tweet.]", lines)
	}
}

func TestSQLiteSourceErrors(t *testing.T) {
	t.Run("missing database", func(t *testing.T) {
		if _, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nope.db"), ""); err == nil {
			t.Error("expected an error for a missing database")
		}
	})

	t.Run("bad query", func(t *testing.T) {
		path := setupTestDB(t, "hello.")
		if _, err := OpenSQLite(context.Background(), path, "SELECT text FROM missing_table"); err == nil {
			t.Error("expected an error for a query on a missing table")
		}
	})
}

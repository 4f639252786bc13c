package corpus

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/tweetsgen/pkg/markov"
)

// SQLitePrefix forces a path to be opened as a SQLite database.
const SQLitePrefix = "sqlite:"

// StdinPath makes Open read text lines from standard input.
const StdinPath = "-"

// Source is a markov.LineSource backed by a resource that must be closed.
type Source interface {
	markov.LineSource
	io.Closer
}

// Kind identifies the format of a corpus.
type Kind string

const (
	KindText   Kind = "text"
	KindHTML   Kind = "html"
	KindSQLite Kind = "sqlite"
)

type openOptions struct {
	maxLineLength int
	query         string
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

// WithMaxLineLength sets the longest accepted line of a text corpus.
func WithMaxLineLength(n int) OpenOption {
	return func(o *openOptions) { o.maxLineLength = n }
}

// WithQuery sets the query used to read a SQLite corpus.
func WithQuery(q string) OpenOption {
	return func(o *openOptions) { o.query = q }
}

// DetectKind returns the corpus format of path and the path with any
// SQLitePrefix removed. Files ending in .db, .sqlite or .sqlite3 are SQLite
// databases, files ending in .html or .htm are HTML pages, and everything
// else is read as text.
func DetectKind(path string) (Kind, string) {
	if rest, ok := strings.CutPrefix(path, SQLitePrefix); ok {
		return KindSQLite, rest
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, path
	case ".html", ".htm":
		return KindHTML, path
	default:
		return KindText, path
	}
}

// Open returns a Source for the corpus at path, chosen by DetectKind.
// The caller must close the returned Source.
func Open(ctx context.Context, path string, opts ...OpenOption) (Source, error) {
	options := &openOptions{maxLineLength: DefaultMaxLineLength, query: DefaultQuery}
	for _, opt := range opts {
		opt(options)
	}

	if path == StdinPath {
		return &fileSource{TextSource: NewTextSource(os.Stdin, options.maxLineLength)}, nil
	}

	kind, path := DetectKind(path)
	if kind == KindSQLite {
		src, err := OpenSQLite(ctx, path, options.query)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}

	if kind == KindHTML {
		defer f.Close()
		pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
		if abs, err := filepath.Abs(path); err == nil {
			pageURL.Path = filepath.ToSlash(abs)
		}
		src, err := NewHTMLSource(f, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return src, nil
	}

	return &fileSource{TextSource: NewTextSource(f, options.maxLineLength), file: f}, nil
}

// fileSource is a TextSource that owns the file it reads from.
type fileSource struct {
	*TextSource
	file *os.File
}

func (s *fileSource) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ingestOptions Is used by the ingest functions to configure default options.
type ingestOptions struct {
	tokenLimit int
	tokenizer  Tokenizer
	logger     *slog.Logger
}

// IngestOption is a function that configures ingestion. It's used as a
// variadic argument in Ingest and WordTable.Ingest.
type IngestOption func(*ingestOptions)

// WithTokenLimit sets the maximum number of tokens to consume across all
// lines. Ingestion stops as soon as the budget is reached, even in the middle
// of a line. A negative value disables the limit.
func WithTokenLimit(n int) IngestOption {
	return func(o *ingestOptions) { o.tokenLimit = n }
}

// WithTokenizer sets the tokenizer of the table built by Ingest. A table's
// tokenizer is fixed at construction, so WordTable.Ingest rejects this
// option with ErrTokenizerOption.
func WithTokenizer(t Tokenizer) IngestOption {
	return func(o *ingestOptions) { o.tokenizer = t }
}

// WithLogger sets the logger of the table built by Ingest. Passed to
// WordTable.Ingest, it replaces the logger of the existing table.
func WithLogger(l *slog.Logger) IngestOption {
	return func(o *ingestOptions) { o.logger = l }
}

// ErrTokenizerOption is returned by WordTable.Ingest when WithTokenizer is
// passed; use NewWordTable or Ingest to choose a tokenizer.
var ErrTokenizerOption = errors.New("markov: WithTokenizer cannot change the tokenizer of an existing table")

// IngestResult summarizes a single ingestion pass.
type IngestResult struct {
	Lines       int  // Lines read from the source
	Tokens      int  // Tokens consumed, including the seeding token
	Transitions int  // Pair occurrences recorded on non-terminal words
	Truncated   bool // Whether the token limit stopped ingestion early
}

// Ingest builds a new WordTable from every line of src.
// It is a convenience wrapper around NewWordTable and WordTable.Ingest.
func Ingest(ctx context.Context, src LineSource, opts ...IngestOption) (*WordTable, error) {
	options := newIngestOptions(opts)
	t := NewWordTable(options.tokenizer)
	t.SetLogger(options.logger)
	if _, err := t.ingest(ctx, src, options); err != nil {
		return nil, err
	}
	return t, nil
}

func newIngestOptions(opts []IngestOption) *ingestOptions {
	options := &ingestOptions{tokenLimit: -1}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Ingest reads lines from src and records every consecutive pair of tokens
// within a line as a transition. The first token ever read seeds an empty
// table. The first token of each line starts a fresh context and never
// receives a transition from the previous line. Cancellation of ctx is
// checked between lines.
func (t *WordTable) Ingest(ctx context.Context, src LineSource, opts ...IngestOption) (IngestResult, error) {
	options := newIngestOptions(opts)
	if options.tokenizer != nil {
		return IngestResult{}, ErrTokenizerOption
	}
	t.SetLogger(options.logger)
	return t.ingest(ctx, src, options)
}

func (t *WordTable) ingest(ctx context.Context, src LineSource, options *ingestOptions) (IngestResult, error) {
	var res IngestResult
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return res, fmt.Errorf("failed to read line %d: %w", res.Lines+1, err)
		}
		res.Lines++

		if !t.ingestLine(trimLineTerminator(line), options.tokenLimit, &res) {
			res.Truncated = true
			t.logger.DebugContext(ctx, "Ingestion stopped by token limit",
				slog.Int("token_limit", options.tokenLimit),
				slog.Int("line", res.Lines),
			)
			break
		}
	}

	t.logger.InfoContext(ctx, "Ingestion completed",
		slog.Int("lines_read", res.Lines),
		slog.Int("tokens_consumed", res.Tokens),
		slog.Int("transitions_recorded", res.Transitions),
		slog.Int("distinct_words", len(t.entries)),
	)

	return res, nil
}

// ingestLine processes the tokens of a single line. It returns false once the
// token limit has been reached.
func (t *WordTable) ingestLine(line string, limit int, res *IngestResult) bool {
	prev := -1
	for _, token := range t.tokenizer.Split(line) {
		if limit >= 0 && res.Tokens >= limit {
			return false
		}
		res.Tokens++

		if len(t.entries) == 0 {
			prev = t.Commit(t.NewWord(token))
			continue
		}

		if i, ok := t.Find(token); ok {
			t.entries[i].Occurrences++
			if prev >= 0 && !t.entries[prev].terminal {
				t.RecordTransition(prev, i)
				res.Transitions++
			}
			prev = i
			continue
		}

		pending := t.NewWord(token)
		if prev < 0 {
			prev = t.Commit(pending)
			continue
		}
		if !t.entries[prev].terminal {
			res.Transitions++
		}
		prev, _ = t.RecordPendingTransition(prev, pending)
	}
	return true
}

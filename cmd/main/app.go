package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/CTAG07/tweetsgen/pkg/corpus"
	"github.com/CTAG07/tweetsgen/pkg/markov"
	"github.com/CTAG07/tweetsgen/pkg/render"
)

// app holds the word table built at startup and everything needed to turn
// it into output. The table is read-only once newApp returns.
type app struct {
	config   *Config
	logger   *slog.Logger
	table    *markov.WordTable
	renderer *render.Renderer
}

func newApp(ctx context.Context, config *Config, logger *slog.Logger) (*app, error) {
	renderer, err := newRenderer(config.Output)
	if err != nil {
		return nil, err
	}
	table, err := loadTable(ctx, config, logger)
	if err != nil {
		return nil, err
	}
	return &app{
		config:   config,
		logger:   logger,
		table:    table,
		renderer: renderer,
	}, nil
}

func newRenderer(config *OutputConfig) (*render.Renderer, error) {
	if config.TemplateFile != "" {
		return render.ParseFile(config.TemplateFile)
	}
	return render.New(config.Template)
}

// loadTable opens the configured corpus and ingests it into a new word table.
func loadTable(ctx context.Context, config *Config, logger *slog.Logger) (*markov.WordTable, error) {
	src, err := corpus.Open(ctx, config.Corpus.Path,
		corpus.WithMaxLineLength(config.Generator.MaxLineLength),
		corpus.WithQuery(config.Corpus.Query),
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn("Failed to close corpus", "path", config.Corpus.Path, "error", err)
		}
	}()

	logger.Debug("Reading corpus", "path", config.Corpus.Path, "token_limit", config.Generator.TokenLimit)
	table, err := markov.Ingest(ctx, src,
		markov.WithTokenizer(config.Generator.Tokenizer()),
		markov.WithLogger(logger),
		markov.WithTokenLimit(config.Generator.TokenLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest corpus %s: %w", config.Corpus.Path, err)
	}

	stats := table.Stats()
	logger.Info("Word table ready",
		slog.Int("words", stats.Words),
		slog.Int("starting_words", stats.StartingWords),
		slog.Int("terminal_words", stats.TerminalWords),
		slog.Int("transitions", stats.Transitions),
		slog.Int("dead_ends", stats.DeadEnds),
	)
	return table, nil
}

// tweets generates a batch of count sentences from seed. Tweet i (1-based)
// is drawn from markov.SeedFor(seed, i-1), after seed 0 is mapped to 1.
func (a *app) tweets(seed uint64, count, maxWords int) ([]render.Tweet, error) {
	seed = markov.NormalizeSeed(seed)
	batch, err := a.table.Sentences(seed, count, markov.WithMaxWords(maxWords))
	if err != nil {
		return nil, err
	}
	tweets := make([]render.Tweet, len(batch))
	for i, words := range batch {
		tweets[i] = render.Tweet{Index: i + 1, Seed: markov.SeedFor(seed, i), Words: words}
	}
	return tweets, nil
}

// writeTweets renders a batch of tweets to w.
func (a *app) writeTweets(w io.Writer, seed uint64, count int) error {
	tweets, err := a.tweets(seed, count, a.config.Generator.MaxWords)
	if err != nil {
		return fmt.Errorf("failed to generate tweets: %w", err)
	}

	bw := bufio.NewWriter(w)
	for _, t := range tweets {
		if err = a.renderer.Render(bw, t); err != nil {
			return err
		}
	}
	return bw.Flush()
}

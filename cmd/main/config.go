package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/CTAG07/tweetsgen/pkg/corpus"
	"github.com/CTAG07/tweetsgen/pkg/markov"
)

// GeneratorConfig holds the settings for building the word table and
// sampling sentences from it.
type GeneratorConfig struct {
	Seed          uint64 `json:"seed"`
	SentenceCount int    `json:"sentence_count"`
	MaxWords      int    `json:"max_words"`
	TokenLimit    int    `json:"token_limit"`
	MaxLineLength int    `json:"max_line_length"`
	Separator     string `json:"separator"`
	Terminator    string `json:"terminator"`
}

// CorpusConfig holds the location of the corpus and how to read it.
type CorpusConfig struct {
	Path  string `json:"path"`
	Query string `json:"sqlite_query"`
}

// OutputConfig holds the template used to print generated sentences.
// TemplateFile takes precedence over Template when both are set.
type OutputConfig struct {
	Template     string `json:"template"`
	TemplateFile string `json:"template_file"`
}

// ServerConfig holds the configuration for the HTTP API.
type ServerConfig struct {
	ApiAddr            string   `json:"api_addr"`
	LogLevel           string   `json:"log_level"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	MaxSentenceCount   int      `json:"max_sentence_count"`
	MaxWordsLimit      int      `json:"max_words_limit"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Generator *GeneratorConfig `json:"generator_config"`
	Corpus    *CorpusConfig    `json:"corpus_config"`
	Output    *OutputConfig    `json:"output_config"`
	Server    *ServerConfig    `json:"server_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Generator: &GeneratorConfig{
			Seed:          1,
			SentenceCount: 1,
			MaxWords:      markov.DefaultMaxWords,
			TokenLimit:    -1,
			MaxLineLength: corpus.DefaultMaxLineLength,
			Separator:     " ",
			Terminator:    markov.DefaultTerminator,
		},
		Corpus: &CorpusConfig{
			Path:  "",
			Query: corpus.DefaultQuery,
		},
		Output: &OutputConfig{
			Template: "",
		},
		Server: &ServerConfig{
			ApiAddr:            ":7280",
			LogLevel:           "info",
			CORSAllowedOrigins: []string{"*"},
			MaxSentenceCount:   100,
			MaxWordsLimit:      100,
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// Validate fills in sections missing from a partial config file and checks
// the values that have no sensible fallback.
func (c *Config) Validate() error {
	defaults := DefaultConfig()
	if c.Generator == nil {
		c.Generator = defaults.Generator
	}
	if c.Corpus == nil {
		c.Corpus = defaults.Corpus
	}
	if c.Output == nil {
		c.Output = defaults.Output
	}
	if c.Server == nil {
		c.Server = defaults.Server
	}

	if c.Generator.SentenceCount < 0 {
		return fmt.Errorf("sentence_count must not be negative, got %d", c.Generator.SentenceCount)
	}
	if c.Generator.MaxWords < 1 {
		return fmt.Errorf("max_words must be at least 1, got %d", c.Generator.MaxWords)
	}
	if c.Server.MaxSentenceCount < 1 {
		return fmt.Errorf("max_sentence_count must be at least 1, got %d", c.Server.MaxSentenceCount)
	}
	if c.Server.MaxWordsLimit < c.Generator.MaxWords {
		return fmt.Errorf("max_words_limit must be at least max_words (%d), got %d", c.Generator.MaxWords, c.Server.MaxWordsLimit)
	}
	return nil
}

// Tokenizer builds the tokenizer described by the generator config.
func (c *GeneratorConfig) Tokenizer() *markov.DefaultTokenizer {
	return markov.NewDefaultTokenizer(markov.WithSeparator(c.Separator), markov.WithTerminator(c.Terminator))
}

// parseLogLevel maps a config log level to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

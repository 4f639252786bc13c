package markov

import "strings"

// DefaultTerminator is the suffix that marks a sentence-ending word.
const DefaultTerminator = "."

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It splits lines on single ASCII spaces, skipping the empty tokens produced
// by consecutive spaces, and treats any word ending in the terminator as the
// end of a sentence. Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	separator  string
	terminator string
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithSeparator Sets the string used for splitting lines into tokens.
// Default: " "
func WithSeparator(sep string) Option {
	return func(t *DefaultTokenizer) {
		if sep != "" {
			t.separator = sep
		}
	}
}

// WithTerminator Sets the suffix that marks a sentence-ending word.
// Default: "."
func WithTerminator(term string) Option {
	return func(t *DefaultTokenizer) {
		if term != "" {
			t.terminator = term
		}
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		separator:  " ",
		terminator: DefaultTerminator,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Split returns the non-empty tokens of the line.
func (t *DefaultTokenizer) Split(line string) []string {
	parts := strings.Split(line, t.separator)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// IsTerminal reports whether the word ends with the configured terminator.
func (t *DefaultTokenizer) IsTerminal(word string) bool {
	return strings.HasSuffix(word, t.terminator)
}

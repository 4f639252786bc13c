package markov

import (
	"errors"
	"io"
	"strings"
)

// Tokenizer is an interface that defines the contract for splitting a line
// of input into word tokens and for classifying the words that end a
// sentence. This allows the table and ingestion logic to be independent of
// the specific tokenization strategy.
type Tokenizer interface {
	// Split returns the tokens of a single line, in order. The line has
	// already had its line terminator removed.
	Split(line string) []string
	// IsTerminal reports whether a word ends a sentence. Terminal words never
	// receive outgoing transitions.
	IsTerminal(word string) bool
}

// LineSource is an interface for a stateful reader of corpus lines.
type LineSource interface {
	// Next returns the next line from the source. It returns io.EOF as the
	// error when the source is fully consumed.
	Next() (string, error)
}

// SliceSource is a LineSource over an in-memory list of lines.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource returns a LineSource that yields the given lines in order.
func NewSliceSource(lines ...string) *SliceSource {
	return &SliceSource{lines: lines}
}

// Next returns the next line, or io.EOF once every line has been returned.
func (s *SliceSource) Next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// ReadLines drains a LineSource into a slice. It is mostly useful for tests
// and for small sources that need to be inspected before ingestion.
func ReadLines(src LineSource) ([]string, error) {
	var lines []string
	for {
		line, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return lines, err
		}
		lines = append(lines, line)
	}
}

// trimLineTerminator removes exactly one trailing "\n", and a "\r" before it,
// if present. Anything else at the end of the line is part of the last word.
func trimLineTerminator(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	line = line[:len(line)-1]
	return strings.TrimSuffix(line, "\r")
}

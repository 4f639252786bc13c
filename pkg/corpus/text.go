package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxLineLength is the longest accepted line, in bytes, including its
// line terminator.
const DefaultMaxLineLength = 1000

// ErrLineTooLong is returned by TextSource when a line exceeds the configured
// maximum length.
var ErrLineTooLong = errors.New("corpus: line too long")

// TextSource reads newline-separated lines from an io.Reader.
// The returned lines have their "\n" or "\r\n" terminator removed.
type TextSource struct {
	scanner       *bufio.Scanner
	maxLineLength int
	line          int
}

// NewTextSource returns a TextSource reading from r. A maxLineLength of zero
// or less selects DefaultMaxLineLength.
func NewTextSource(r io.Reader, maxLineLength int) *TextSource {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, maxLineLength), maxLineLength)
	return &TextSource{scanner: scanner, maxLineLength: maxLineLength}
}

// Next returns the next line, or io.EOF once the reader is exhausted.
func (s *TextSource) Next() (string, error) {
	if s.scanner.Scan() {
		s.line++
		return s.scanner.Text(), nil
	}

	err := s.scanner.Err()
	switch {
	case err == nil:
		return "", io.EOF
	case errors.Is(err, bufio.ErrTooLong):
		return "", fmt.Errorf("%w: line %d is longer than %d bytes", ErrLineTooLong, s.line+1, s.maxLineLength)
	default:
		return "", fmt.Errorf("failed to read line %d: %w", s.line+1, err)
	}
}

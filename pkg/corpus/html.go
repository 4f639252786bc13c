package corpus

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/CTAG07/tweetsgen/pkg/markov"
)

// MaxHTMLSize is the largest HTML document NewHTMLSource will read.
const MaxHTMLSize = 10 * 1024 * 1024

// HTMLSource yields the readable text of an HTML page, one line per
// non-blank line of the extracted article. Runs of whitespace inside a line
// are collapsed to a single space.
type HTMLSource struct {
	*markov.SliceSource
	Title string
}

// NewHTMLSource extracts the main article of the HTML document read from r.
// pageURL is used to resolve relative links and may be nil.
func NewHTMLSource(r io.Reader, pageURL *url.URL) (*HTMLSource, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxHTMLSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read html: %w", err)
	}
	if len(body) > MaxHTMLSize {
		return nil, fmt.Errorf("html document exceeds maximum size of %d bytes", MaxHTMLSize)
	}

	if pageURL == nil {
		pageURL = &url.URL{Scheme: "http", Host: "localhost"}
	}
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	return &HTMLSource{
		SliceSource: markov.NewSliceSource(articleLines(article.TextContent)...),
		Title:       article.Title,
	}, nil
}

// Close is a no-op; the document is fully read by NewHTMLSource.
func (s *HTMLSource) Close() error {
	return nil
}

func articleLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, strings.Join(fields, " "))
		}
	}
	return lines
}

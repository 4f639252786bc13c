package markov

import (
	"context"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestTable ingests the given lines into a new WordTable.
// It fails the test immediately if ingestion returns an error.
func setupTestTable(t *testing.T, lines ...string) *WordTable {
	t.Helper()
	table, err := Ingest(context.Background(), NewSliceSource(lines...))
	if err != nil {
		t.Fatalf("setup: Ingest() failed: %v", err)
	}
	return table
}

// fixedSource is a Source that replays a fixed list of draws, cycling when it
// runs out. Each draw is reduced modulo n so that it stays in range.
type fixedSource struct {
	draws []int
	pos   int
}

func (f *fixedSource) IntN(n int) int {
	d := f.draws[f.pos%len(f.draws)]
	f.pos++
	return d % n
}

// mustFind returns the index of word or fails the test.
func mustFind(t *testing.T, table *WordTable, word string) int {
	t.Helper()
	i, ok := table.Find(word)
	if !ok {
		t.Fatalf("expected to find %q in the table", word)
	}
	return i
}

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() []string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = []string{"this is a fallback corpus for benchmarking.", "it is not very long but will prevent a crash."}
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = strings.Split(sb.String(), "\n")
	})
	return benchmarkCorpus
}

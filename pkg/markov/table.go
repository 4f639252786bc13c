package markov

import (
	"io"
	"log/slog"
)

// WordEntry is a single distinct word of a corpus. It holds the number of
// times the word was encountered and its weighted outgoing transitions, in
// the order they were first recorded.
type WordEntry struct {
	Text        string
	Occurrences int
	Transitions []Transition
	terminal    bool
}

// Terminal reports whether the word ends a sentence.
func (e WordEntry) Terminal() bool {
	return e.terminal
}

// Transition is a directed, weighted edge to another entry of the same
// WordTable. Target is the index of that entry; Weight is the number of
// times the pair was seen.
type Transition struct {
	Target int
	Weight int
}

// PendingWord is a word that has been built but not yet committed to a
// WordTable. Dropping it has no effect on the table.
type PendingWord struct {
	entry WordEntry
}

// Text returns the word of the pending entry.
func (p PendingWord) Text() string {
	return p.entry.Text
}

// WordTable is the main entry point for building and sampling a Markov chain.
// It owns every WordEntry in an append-only arena, indexed by text for
// constant-time lookup. Transitions never hold pointers into the arena,
// only indices, so growing the arena never invalidates them.
//
// A WordTable is not safe for concurrent mutation. Once ingestion has
// finished it is only read, and may then be shared between goroutines.
type WordTable struct {
	entries   []WordEntry
	index     map[string]int
	tokenizer Tokenizer
	starters  int // non-terminal words
	linked    int // non-terminal words with at least one transition
	logger    *slog.Logger
}

// NewWordTable creates an empty WordTable. A nil tokenizer selects
// NewDefaultTokenizer().
func NewWordTable(tokenizer Tokenizer) *WordTable {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	return &WordTable{
		index:     make(map[string]int),
		tokenizer: tokenizer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the WordTable. By default, all logs are discarded.
// Providing a `log/slog.Logger` will enable logging for ingestion and generation.
func (t *WordTable) SetLogger(logger *slog.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

// Tokenizer returns the tokenizer the table classifies words with.
func (t *WordTable) Tokenizer() Tokenizer {
	return t.tokenizer
}

// Len returns the number of distinct words in the table.
func (t *WordTable) Len() int {
	return len(t.entries)
}

// Entry returns a copy of the entry at index i. The Transitions slice is
// shared with the table and must not be modified.
func (t *WordTable) Entry(i int) WordEntry {
	return t.entries[i]
}

// Word returns the text of the entry at index i.
func (t *WordTable) Word(i int) string {
	return t.entries[i].Text
}

// Words returns the text of every entry, in insertion order.
func (t *WordTable) Words() []string {
	words := make([]string, len(t.entries))
	for i, e := range t.entries {
		words[i] = e.Text
	}
	return words
}

// Find looks up a word by exact match and returns its index.
func (t *WordTable) Find(text string) (int, bool) {
	i, ok := t.index[text]
	return i, ok
}

// NewWord builds an uncommitted entry for text with a single occurrence.
// The entry only becomes part of the table once it is passed to Commit or
// RecordPendingTransition.
func (t *WordTable) NewWord(text string) PendingWord {
	return PendingWord{entry: WordEntry{
		Text:        text,
		Occurrences: 1,
		terminal:    t.tokenizer.IsTerminal(text),
	}}
}

// Commit appends a pending word to the table and returns its index. If the
// word is already present, the existing index is returned and the pending
// entry is dropped.
func (t *WordTable) Commit(p PendingWord) int {
	if i, ok := t.index[p.entry.Text]; ok {
		return i
	}
	i := len(t.entries)
	t.entries = append(t.entries, p.entry)
	t.index[p.entry.Text] = i
	if !p.entry.terminal {
		t.starters++
	}
	return i
}

// RecordTransition records one occurrence of the pair (from, to). It returns
// true if a new edge was appended to from's transitions, and false if an
// existing edge was incremented or from is terminal, in which case nothing
// is recorded.
func (t *WordTable) RecordTransition(from, to int) bool {
	src := &t.entries[from]
	if src.terminal {
		return false
	}
	for i := range src.Transitions {
		if src.Transitions[i].Target == to {
			src.Transitions[i].Weight++
			return false
		}
	}
	if len(src.Transitions) == 0 {
		t.linked++
	}
	src.Transitions = append(src.Transitions, Transition{Target: to, Weight: 1})
	return true
}

// RecordPendingTransition records the pair (from, p) for a word that is not
// yet in the table. If from already has an edge to a word with the same text,
// that edge is incremented and the pending word is dropped. Otherwise the
// pending word is committed and, unless from is terminal, linked with a new
// edge of weight 1. It returns the canonical index of the word and whether
// the pending word was committed.
func (t *WordTable) RecordPendingTransition(from int, p PendingWord) (int, bool) {
	src := &t.entries[from]
	if !src.terminal {
		for i := range src.Transitions {
			edge := &src.Transitions[i]
			if t.entries[edge.Target].Text == p.entry.Text {
				edge.Weight++
				return edge.Target, false
			}
		}
	}

	// Commit may grow the arena, so src must not be used past this point.
	to := t.Commit(p)
	t.RecordTransition(from, to)
	return to, true
}

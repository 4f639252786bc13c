package markov

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// DefaultMaxWords is the default upper bound on the length of a generated sentence.
const DefaultMaxWords = 20

var (
	// ErrEmptyTable is returned when generating from a table with no words.
	ErrEmptyTable = errors.New("markov: word table is empty")
	// ErrNoStartingWord is returned when every word in the table is terminal,
	// so no sentence can be started.
	ErrNoStartingWord = errors.New("markov: word table has no non-terminal word to start from")
	// ErrInvalidMaxWords is returned when the maximum sentence length is below 1.
	ErrInvalidMaxWords = errors.New("markov: max words must be at least 1")
)

// Source is the random engine used by the sampler. It must return a
// uniformly distributed integer in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic random engine for the given seed.
// Two engines built from the same seed produce the same sequence.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// NormalizeSeed maps the seed 0 to 1 and leaves every other seed unchanged.
func NormalizeSeed(seed uint64) uint64 {
	if seed == 0 {
		return 1
	}
	return seed
}

// SeedFor returns the seed of the i-th sentence (0-based) of a batch started
// from seed. Each sentence is drawn from a freshly seeded engine, which keeps
// a batch reproducible sentence by sentence.
func SeedFor(seed uint64, i int) uint64 {
	return seed - uint64(i)
}

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxWords int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like Generate and Sentences.
type GenerateOption func(*generateOptions)

// WithMaxWords sets the maximum number of words in a generated sentence.
// Generation stops earlier if a terminal word is chosen.
func WithMaxWords(n int) GenerateOption {
	return func(o *generateOptions) { o.maxWords = n }
}

func newGenerateOptions(opts []GenerateOption) (*generateOptions, error) {
	options := &generateOptions{maxWords: DefaultMaxWords}
	for _, opt := range opts {
		opt(options)
	}
	if options.maxWords < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxWords, options.maxWords)
	}
	return options, nil
}

// Generate walks the table once and returns the words of a new sentence.
// The first word is drawn uniformly from the non-terminal words that have
// transitions; each next word is drawn from the current word's transitions
// in proportion to their weight. The walk ends on a terminal word, on a word
// with no transitions, or after WithMaxWords words.
//
// Only when no word has a transition does the first word come from the
// remaining non-terminal words, which yields one-word sentences.
func (t *WordTable) Generate(rng Source, opts ...GenerateOption) ([]string, error) {
	options, err := newGenerateOptions(opts)
	if err != nil {
		return nil, err
	}
	if err = t.checkGeneratable(); err != nil {
		return nil, err
	}
	return t.walk(t.firstWord(rng), rng, options.maxWords), nil
}

// Sentences generates count sentences. Sentence i is drawn from an engine
// seeded with SeedFor(NormalizeSeed(seed), i), so the same seed and table
// always produce the same batch.
func (t *WordTable) Sentences(seed uint64, count int, opts ...GenerateOption) ([][]string, error) {
	options, err := newGenerateOptions(opts)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, nil
	}
	if err = t.checkGeneratable(); err != nil {
		return nil, err
	}

	seed = NormalizeSeed(seed)
	sentences := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		rng := NewSource(SeedFor(seed, i))
		sentences = append(sentences, t.walk(t.firstWord(rng), rng, options.maxWords))
	}
	return sentences, nil
}

func (t *WordTable) checkGeneratable() error {
	if len(t.entries) == 0 {
		return ErrEmptyTable
	}
	if t.starters == 0 {
		return ErrNoStartingWord
	}
	return nil
}

// firstWord draws uniformly over the whole table and redraws terminal words,
// and dead ends as long as some word has a transition. Callers must ensure at
// least one non-terminal word exists.
func (t *WordTable) firstWord(rng Source) int {
	skipDeadEnds := t.linked > 0
	for {
		i := rng.IntN(len(t.entries))
		e := &t.entries[i]
		if e.terminal || (skipDeadEnds && len(e.Transitions) == 0) {
			continue
		}
		return i
	}
}

// walk contains the main loop for generating a sentence from a start word.
func (t *WordTable) walk(start int, rng Source, maxWords int) []string {
	words := []string{t.entries[start].Text}
	current := start

	var cumulative []int
	for !t.entries[current].terminal && len(words) < maxWords {
		edges := t.entries[current].Transitions
		if len(edges) == 0 { // Dead end in chain
			t.logger.Debug("Generation terminated due to dead-end",
				slog.String("last_word", t.entries[current].Text),
				slog.Int("generated_length", len(words)),
			)
			break
		}

		current, cumulative = chooseNext(edges, rng, cumulative[:0])
		words = append(words, t.entries[current].Text)
	}
	return words
}

// chooseNext builds the cumulative weights of edges, draws in [0, total) and
// returns the target of the first bucket whose cumulative weight exceeds the
// draw. The cumulative buffer is returned for reuse.
func chooseNext(edges []Transition, rng Source, cumulative []int) (int, []int) {
	total := 0
	for _, e := range edges {
		total += e.Weight
		cumulative = append(cumulative, total)
	}

	draw := rng.IntN(total)
	for i, c := range cumulative {
		if draw < c {
			return edges[i].Target, cumulative
		}
	}
	return edges[0].Target, cumulative
}

package markov

// TableStats holds aggregated statistics for a WordTable.
type TableStats struct {
	Words         int `json:"words"`          // The number of distinct words
	TerminalWords int `json:"terminal_words"` // The number of words that end a sentence
	StartingWords int `json:"starting_words"` // The number of words a sentence can start with
	DeadEnds      int `json:"dead_ends"`      // Non-terminal words with no outgoing transitions
	Transitions   int `json:"transitions"`    // The number of unique word->word edges
	TotalWeight   int `json:"total_weight"`   // The sum of all edge weights; the number of recorded pairs
	Occurrences   int `json:"occurrences"`    // The sum of all word occurrence counts
}

// Stats returns a snapshot of statistics for the table.
func (t *WordTable) Stats() TableStats {
	stats := TableStats{
		Words:         len(t.entries),
		StartingWords: t.starters,
		TerminalWords: len(t.entries) - t.starters,
	}
	if t.linked > 0 {
		stats.StartingWords = t.linked
	}
	for _, e := range t.entries {
		stats.Occurrences += e.Occurrences
		stats.Transitions += len(e.Transitions)
		for _, tr := range e.Transitions {
			stats.TotalWeight += tr.Weight
		}
		if !e.terminal && len(e.Transitions) == 0 {
			stats.DeadEnds++
		}
	}
	return stats
}

package main

import (
	"log/slog"
	"net/http"

	"github.com/CTAG07/tweetsgen/pkg/markov"
)

// StatsAPI holds the dependencies for the statistics handlers.
type StatsAPI struct {
	table  *markov.WordTable
	logger *slog.Logger
}

// NewStatsAPI creates a new instance of the StatsAPI.
func NewStatsAPI(table *markov.WordTable, logger *slog.Logger) *StatsAPI {
	return &StatsAPI{
		table:  table,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all /api/stats endpoints.
func (s *StatsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/stats/words", s.handleWords)
}

// handleStats returns the statistics of the word table.
func (s *StatsAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, s.table.Stats())
}

// WordResponse describes a single entry of the word table.
type WordResponse struct {
	Text        string               `json:"text"`
	Occurrences int                  `json:"occurrences"`
	Terminal    bool                 `json:"terminal"`
	Transitions []TransitionResponse `json:"transitions"`
}

// TransitionResponse is an outgoing edge of a word, by target text.
type TransitionResponse struct {
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// handleWords returns the entry for the word given in the "word" query
// parameter, with its transitions resolved to text.
func (s *StatsAPI) handleWords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		respondWithError(w, http.StatusBadRequest, "'word' parameter is required")
		return
	}

	i, ok := s.table.Find(word)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Word not found")
		return
	}
	entry := s.table.Entry(i)
	resp := WordResponse{
		Text:        entry.Text,
		Occurrences: entry.Occurrences,
		Terminal:    entry.Terminal(),
		Transitions: make([]TransitionResponse, 0, len(entry.Transitions)),
	}
	for _, t := range entry.Transitions {
		resp.Transitions = append(resp.Transitions, TransitionResponse{Target: s.table.Word(t.Target), Weight: t.Weight})
	}
	respondWithJSON(w, http.StatusOK, resp)
}

package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/CTAG07/tweetsgen/pkg/markov"
)

// TweetsAPI serves generated sentences.
type TweetsAPI struct {
	app *app
}

// TweetResponse is a single generated sentence.
type TweetResponse struct {
	Index int      `json:"index"`
	Seed  uint64   `json:"seed"`
	Words []string `json:"words"`
	Text  string   `json:"text"`
}

// TweetsResponse is the body returned by GET /api/tweets.
type TweetsResponse struct {
	Seed   uint64          `json:"seed"`
	Tweets []TweetResponse `json:"tweets"`
}

// NewTweetsAPI creates a new instance of the TweetsAPI.
func NewTweetsAPI(a *app) *TweetsAPI {
	return &TweetsAPI{app: a}
}

// RegisterRoutes sets up the routing for the /api/tweets endpoint.
func (t *TweetsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/tweets", t.handleTweets)
}

// handleTweets generates a batch of tweets. Query parameters seed, count and
// max_words default to the generator config; format=text renders the batch
// with the output template instead of returning JSON.
func (t *TweetsAPI) handleTweets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	cfg := t.app.config
	query := r.URL.Query()

	seed := cfg.Generator.Seed
	if s := query.Get("seed"); s != "" {
		var err error
		if seed, err = parseSeed(s); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid 'seed' parameter")
			return
		}
	}
	count, ok := intParam(w, query.Get("count"), "count", cfg.Generator.SentenceCount)
	if !ok {
		return
	}
	if count < 0 || count > cfg.Server.MaxSentenceCount {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("'count' must be between 0 and %d", cfg.Server.MaxSentenceCount))
		return
	}
	maxWords, ok := intParam(w, query.Get("max_words"), "max_words", cfg.Generator.MaxWords)
	if !ok {
		return
	}
	if maxWords > cfg.Server.MaxWordsLimit {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("'max_words' must be at most %d", cfg.Server.MaxWordsLimit))
		return
	}

	tweets, err := t.app.tweets(seed, count, maxWords)
	if err != nil {
		switch {
		case errors.Is(err, markov.ErrInvalidMaxWords):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, markov.ErrEmptyTable), errors.Is(err, markov.ErrNoStartingWord):
			respondWithError(w, http.StatusServiceUnavailable, fmt.Sprintf("Corpus cannot produce sentences: %v", err))
		default:
			t.app.logger.Error("Failed to generate tweets", "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate tweets: %v", err))
		}
		return
	}

	if query.Get("format") == "text" {
		var sb strings.Builder
		for _, tweet := range tweets {
			if err = t.app.renderer.Render(&sb, tweet); err != nil {
				t.app.logger.Error("Failed to render tweet", "index", tweet.Index, "error", err)
				respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to render tweets: %v", err))
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(sb.String()))
		return
	}

	resp := TweetsResponse{Seed: markov.NormalizeSeed(seed), Tweets: make([]TweetResponse, 0, len(tweets))}
	for _, tweet := range tweets {
		resp.Tweets = append(resp.Tweets, TweetResponse{
			Index: tweet.Index,
			Seed:  tweet.Seed,
			Words: tweet.Words,
			Text:  tweet.Text(),
		})
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// intParam parses an optional integer query parameter, writing a 400 response
// and returning false if it is malformed.
func intParam(w http.ResponseWriter, value, name string, def int) (int, bool) {
	if value == "" {
		return def, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid '%s' parameter", name))
		return 0, false
	}
	return n, true
}

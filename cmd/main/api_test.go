package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/CTAG07/tweetsgen/pkg/markov"
)

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	handler := NewServer(setupTestApp(t, "hello world.")).Handler()

	rr := doRequest(t, handler, http.MethodGet, "/api/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestTweetsAPI(t *testing.T) {
	handler := NewServer(setupTestApp(t, "hello world.")).Handler()

	rr := doRequest(t, handler, http.MethodGet, "/api/tweets?seed=5&count=3")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp TweetsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Seed != 5 || len(resp.Tweets) != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	for i, tweet := range resp.Tweets {
		if tweet.Index != i+1 {
			t.Errorf("tweet %d has index %d", i, tweet.Index)
		}
		if tweet.Seed != uint64(5-i) {
			t.Errorf("tweet %d has seed %d, want %d", i, tweet.Seed, 5-i)
		}
		if tweet.Text != "hello world." || !reflect.DeepEqual(tweet.Words, []string{"hello", "world."}) {
			t.Errorf("unexpected tweet: %+v", tweet)
		}
	}
}

func TestTweetsAPIMatchesCLI(t *testing.T) {
	a := setupTestApp(t,
		"one fish two fish red fish blue fish.",
		"this one has a little star.",
		"say what a lot of fish there are.",
	)
	handler := NewServer(a).Handler()

	rr := doRequest(t, handler, http.MethodGet, "/api/tweets?seed=11&count=4&format=text")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected a text/plain response, got %q", ct)
	}

	var sb strings.Builder
	if err := a.writeTweets(&sb, 11, 4); err != nil {
		t.Fatalf("writeTweets() failed: %v", err)
	}
	if rr.Body.String() != sb.String() {
		t.Errorf("API output differs from CLI output:\n%s\n%s", rr.Body.String(), sb.String())
	}
}

func TestTweetsAPIErrors(t *testing.T) {
	handler := NewServer(setupTestApp(t, "hello world.")).Handler()

	testCases := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"bad seed", http.MethodGet, "/api/tweets?seed=abc", http.StatusBadRequest},
		{"bad count", http.MethodGet, "/api/tweets?count=many", http.StatusBadRequest},
		{"negative count", http.MethodGet, "/api/tweets?count=-1", http.StatusBadRequest},
		{"count over limit", http.MethodGet, "/api/tweets?count=101", http.StatusBadRequest},
		{"bad max words", http.MethodGet, "/api/tweets?max_words=x", http.StatusBadRequest},
		{"zero max words", http.MethodGet, "/api/tweets?max_words=0", http.StatusBadRequest},
		{"max words over limit", http.MethodGet, "/api/tweets?max_words=101", http.StatusBadRequest},
		{"huge max words", http.MethodGet, "/api/tweets?count=100&max_words=200000", http.StatusBadRequest},
		{"wrong method", http.MethodPost, "/api/tweets", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, handler, tc.method, tc.target)
			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tc.wantStatus, rr.Code, rr.Body.String())
			}
			if tc.wantStatus == http.StatusMethodNotAllowed && rr.Header().Get("Allow") != "GET" {
				t.Errorf("expected Allow header 'GET', got %q", rr.Header().Get("Allow"))
			}
		})
	}
}

func TestTweetsAPIMaxWordsLimit(t *testing.T) {
	a := setupTestApp(t, "a b a b")
	handler := NewServer(a).Handler()

	// "a" and "b" form a cycle, so every walk runs to max_words.
	rr := doRequest(t, handler, http.MethodGet, "/api/tweets?seed=3&count=2&max_words=100")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 at the limit, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp TweetsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, tweet := range resp.Tweets {
		if len(tweet.Words) != 100 {
			t.Errorf("expected 100 words, got %d", len(tweet.Words))
		}
	}

	a.config.Server.MaxWordsLimit = 10
	rr = doRequest(t, handler, http.MethodGet, "/api/tweets?max_words=11")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 above a lowered limit, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "at most 10") {
		t.Errorf("expected the limit in the error, got %s", rr.Body.String())
	}
}

func TestTweetsAPINegativeSeed(t *testing.T) {
	handler := NewServer(setupTestApp(t, "hello world.")).Handler()

	rr := doRequest(t, handler, http.MethodGet, "/api/tweets?seed=-1&count=1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp TweetsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Seed != ^uint64(0) {
		t.Errorf("expected seed -1 to wrap to %d, got %d", ^uint64(0), resp.Seed)
	}
}

func TestTweetsAPIDegenerateCorpus(t *testing.T) {
	handler := NewServer(setupTestApp(t, "end.", "stop.")).Handler()

	rr := doRequest(t, handler, http.MethodGet, "/api/tweets?count=1")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), markov.ErrNoStartingWord.Error()) {
		t.Errorf("expected the error to be reported, got %s", rr.Body.String())
	}
}

func TestStatsAPI(t *testing.T) {
	handler := NewServer(setupTestApp(t, "the cat sat.", "the dog ran.")).Handler()

	rr := doRequest(t, handler, http.MethodGet, "/api/stats")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var stats markov.TableStats
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if stats.Words != 5 || stats.StartingWords != 3 || stats.Transitions != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	rr = doRequest(t, handler, http.MethodGet, "/api/stats/words?word=the")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var word WordResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &word); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []TransitionResponse{{Target: "cat", Weight: 1}, {Target: "dog", Weight: 1}}
	if word.Occurrences != 2 || word.Terminal || !reflect.DeepEqual(word.Transitions, want) {
		t.Errorf("unexpected word response: %+v", word)
	}

	if rr = doRequest(t, handler, http.MethodGet, "/api/stats/words?word=zebra"); rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for an unknown word, got %d", rr.Code)
	}
	if rr = doRequest(t, handler, http.MethodGet, "/api/stats/words"); rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without a word, got %d", rr.Code)
	}
}

func TestServerInfoAPI(t *testing.T) {
	handler := NewServer(setupTestApp(t, "hello world.")).Handler()

	rr := doRequest(t, handler, http.MethodGet, "/api/server/version")
	var info VersionInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if info.Version != Version {
		t.Errorf("expected version %q, got %q", Version, info.Version)
	}

	rr = doRequest(t, handler, http.MethodGet, "/api/server/config")
	var config Config
	if err := json.Unmarshal(rr.Body.Bytes(), &config); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if config.Generator == nil || config.Generator.MaxWords != markov.DefaultMaxWords {
		t.Errorf("unexpected config: %+v", config.Generator)
	}
}

func TestCORS(t *testing.T) {
	handler := NewServer(setupTestApp(t, "hello world.")).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
}

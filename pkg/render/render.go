package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/template"
)

// DefaultTemplate writes "Tweet <index>:" followed by each word prefixed
// with a single space, and a newline.
const DefaultTemplate = "Tweet {{.Index}}:{{range .Words}} {{.}}{{end}}\n"

// Tweet is the data passed to the output template for one sentence.
type Tweet struct {
	Index int      // 1-based position in the batch
	Seed  uint64   // Seed the sentence was generated from
	Words []string // Words of the sentence, in order
}

// Text returns the words of the tweet joined by single spaces.
func (t Tweet) Text() string {
	return strings.Join(t.Words, " ")
}

// Renderer executes an output template for generated sentences.
// All methods are concurrent-safe.
type Renderer struct {
	tmpl *template.Template
	text string
	mu   sync.RWMutex
}

// New parses text into a Renderer. An empty text selects DefaultTemplate.
func New(text string) (*Renderer, error) {
	r := &Renderer{}
	if err := r.SetTemplate(text); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseFile reads a template from path and parses it into a Renderer.
func ParseFile(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return New(string(data))
}

// SetTemplate replaces the template of the Renderer. On a parse error the
// current template is kept.
func (r *Renderer) SetTemplate(text string) error {
	if text == "" {
		text = DefaultTemplate
	}
	tmpl, err := template.New("tweet").Funcs(funcMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse output template: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tmpl = tmpl
	r.text = text
	return nil
}

// Template returns the source text of the current template.
func (r *Renderer) Template() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.text
}

// Render executes the template for t and writes the result to w.
func (r *Renderer) Render(w io.Writer, t Tweet) error {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	if err := tmpl.Execute(w, t); err != nil {
		return fmt.Errorf("failed to render tweet %d: %w", t.Index, err)
	}
	return nil
}

// RenderString executes the template for t and returns the result.
func (r *Renderer) RenderString(t Tweet) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

package gazetteer

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Gazetteer is the flattened, lowercased set of known city names.
type Gazetteer struct {
	names    map[string]struct{}
	sorted   []string
	maxWords int
}

// New builds a gazetteer from already flattened names.
func New(names ...string) *Gazetteer {
	g := &Gazetteer{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		g.add(name)
	}
	g.finish()
	return g
}

// Load reads a city file shaped as [[primary, [alt, ...]], ...]. JSON and YAML
// are both accepted.
func Load(path string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gazetteer: %w", err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load gazetteer %s: %w", path, err)
	}
	return g, nil
}

func Read(r io.Reader) (*Gazetteer, error) {
	var entries []any
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}

	g := &Gazetteer{names: make(map[string]struct{})}
	for i, raw := range entries {
		entry, ok := raw.([]any)
		if !ok || len(entry) == 0 {
			log.Printf("⚠️  Gazetteer entry %d skipped: expected [name, [alternates]], got %T", i, raw)
			continue
		}

		if main, ok := entry[0].(string); ok {
			g.add(main)
		} else {
			log.Printf("⚠️  Gazetteer entry %d: primary name should be a string, got %T: %v", i, entry[0], entry[0])
		}

		if len(entry) < 2 || entry[1] == nil {
			continue
		}
		alternates, ok := entry[1].([]any)
		if !ok {
			log.Printf("⚠️  Gazetteer entry %d: alternate names should be a list, got %T", i, entry[1])
			continue
		}
		for _, alt := range alternates {
			name, ok := alt.(string)
			if !ok {
				log.Printf("⚠️  Gazetteer entry %d: alternate name should be a string, got %T: %v", i, alt, alt)
				continue
			}
			g.add(name)
		}
	}

	g.finish()
	return g, nil
}

func (g *Gazetteer) add(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	g.names[name] = struct{}{}
	if words := len(strings.Fields(name)); words > g.maxWords {
		g.maxWords = words
	}
}

func (g *Gazetteer) finish() {
	g.sorted = make([]string, 0, len(g.names))
	for name := range g.names {
		g.sorted = append(g.sorted, name)
	}
	sort.Strings(g.sorted)
}

// Contains reports whether name (any case) is a known city.
func (g *Gazetteer) Contains(name string) bool {
	_, ok := g.names[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// MentionedIn reports whether any known name occurs as a substring of text,
// ignoring case.
func (g *Gazetteer) MentionedIn(text string) bool {
	lower := strings.ToLower(text)
	for _, name := range g.sorted {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// MaxWords is the word count of the longest name.
func (g *Gazetteer) MaxWords() int { return g.maxWords }

func (g *Gazetteer) Len() int { return len(g.names) }

// Names returns every name in lexical order.
func (g *Gazetteer) Names() []string {
	out := make([]string, len(g.sorted))
	copy(out, g.sorted)
	return out
}

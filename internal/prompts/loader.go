// Package prompts carries the instruction texts sent to the model: the page
// classification questions and the table extraction briefs. They are written
// in Portuguese, the language of the documents, and live in JSON files
// embedded at build time, keyed by use case.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

// store caches parsed prompt files; each file is decoded once per process.
type store struct {
	mu     sync.RWMutex
	parsed map[string]map[string]string
}

var catalog = &store{parsed: make(map[string]map[string]string)}

func (s *store) file(filename string) (map[string]string, error) {
	s.mu.RLock()
	byKey, ok := s.parsed[filename]
	s.mu.RUnlock()
	if ok {
		return byKey, nil
	}

	raw, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	s.mu.Lock()
	s.parsed[filename] = byKey
	s.mu.Unlock()
	return byKey, nil
}

// Get returns the prompt stored under key in the named file. The filename
// carries no path ("classify.json", "extraction.json").
// Returns an error if the file or key is not found.
func Get(filename, key string) (string, error) {
	byKey, err := catalog.file(filename)
	if err != nil {
		return "", err
	}

	prompt, ok := byKey[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the program cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with the values in data.
// Placeholders with no value in data stay as they are.
func Format(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{."+key+"}}", value)
	}
	return out
}

// List returns the prompt keys of a file in sorted order.
func List(filename string) ([]string, error) {
	byKey, err := catalog.file(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops every parsed file so tests can exercise cold loads.
func ClearCache() {
	catalog.mu.Lock()
	catalog.parsed = make(map[string]map[string]string)
	catalog.mu.Unlock()
}

// Package prompts embeds the LLM prompt templates, one JSON file per action
// family, each mapping a key to a template with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var (
	loadOnce sync.Once
	loaded   map[string]map[string]string
	loadErr  error
)

// Get returns the template stored under key in filename. The filename is
// path-less (e.g. "career.json").
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// Format substitutes {{.Key}} placeholders with values from data. Keys
// absent from data stay in place, so a malformed call shows up in the
// prompt instead of silently going blank.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// loadFile returns one embedded prompt file; every file parses on first
// use so a broken template fails the first generation rather than a random
// later one.
func loadFile(filename string) (map[string]string, error) {
	loadOnce.Do(func() {
		loaded = make(map[string]map[string]string)
		entries, err := files.ReadDir(".")
		if err != nil {
			loadErr = err
			return
		}
		for _, e := range entries {
			data, err := files.ReadFile(e.Name())
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", e.Name(), err)
				return
			}
			var prompts map[string]string
			if err := json.Unmarshal(data, &prompts); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", e.Name(), err)
				return
			}
			loaded[e.Name()] = prompts
		}
	})
	if loadErr != nil {
		return nil, loadErr
	}
	prompts, ok := loaded[filename]
	if !ok {
		return nil, fmt.Errorf("unknown prompt file: %s", filename)
	}
	return prompts, nil
}

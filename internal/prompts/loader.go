// Package prompts holds the prompt templates for the analysis stages,
// embedded at compile time from analysis.json.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed analysis.json
var promptData []byte

// The file is parsed once on first use.
var (
	loadOnce sync.Once
	catalog  map[string]string
	loadErr  error
)

func load() (map[string]string, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(promptData, &catalog); err != nil {
			loadErr = fmt.Errorf("failed to parse embedded prompt file: %w", err)
		}
	})
	return catalog, loadErr
}

// Get retrieves a prompt template by key.
func Get(key string) (string, error) {
	prompts, err := load()
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// MustGet retrieves a prompt template by key, panicking when it is
// missing. The templates ship with the binary, so a miss is a
// programming error, not a runtime condition.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces placeholders in the form {{.Key}} with values from
// data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// Keys returns all available prompt keys, sorted.
func Keys() ([]string, error) {
	prompts, err := load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

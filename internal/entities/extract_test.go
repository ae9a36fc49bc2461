package entities

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	mu               sync.Mutex
	calls            int
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }
func (m *MockLLMClient) Close() error                    { return nil }

func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestExtract_OneCallPerSection(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			switch {
			case strings.Contains(prompt, "contact details"):
				return `{"name": "John Doe", "email": "john@example.com"}`, nil
			case strings.Contains(prompt, "skill"):
				return `{"skills": ["Go", "SQL"]}`, nil
			default:
				return `{"entries": []}`, nil
			}
		},
	}

	e := NewExtractor(client, zerolog.Nop())
	entities := e.Extract(context.Background(), map[string]string{
		"contact_info":    "John Doe, john@example.com",
		"skills":          "Go, SQL",
		"work_experience": "TechCorp 2020-2023",
	})

	require.Len(t, entities, 3)
	assert.Equal(t, 3, client.Calls())

	contact, ok := entities["contact_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "John Doe", contact["name"])

	skills, ok := entities["skills"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Go", "SQL"}, skills["skills"])
}

func TestExtract_SectionFailureDegradesOnlyThatSection(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			if strings.Contains(prompt, "education") {
				return "", errors.New("quota exceeded")
			}
			return `{"skills": ["Go"]}`, nil
		},
	}

	e := NewExtractor(client, zerolog.Nop())
	entities := e.Extract(context.Background(), map[string]string{
		"education": "MIT, BSc",
		"skills":    "Go",
	})

	require.Len(t, entities, 2)
	assert.Equal(t, map[string]any{}, entities["education"])
	assert.NotEmpty(t, entities["skills"])
}

func TestExtract_UnparsableReplyDegrades(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "I could not find any structured data.", nil
		},
	}

	e := NewExtractor(client, zerolog.Nop())
	entities := e.Extract(context.Background(), map[string]string{"summary": "text"})

	assert.Equal(t, map[string]any{}, entities["summary"])
}

func TestExtract_FencedReplyIsTolerated(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "```json\n{\"skills\": [\"Go\"]}\n```", nil
		},
	}

	e := NewExtractor(client, zerolog.Nop())
	entities := e.Extract(context.Background(), map[string]string{"skills": "Go"})

	skills, ok := entities["skills"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Go"}, skills["skills"])
}

func TestExtract_EmptySections(t *testing.T) {
	client := &MockLLMClient{}

	e := NewExtractor(client, zerolog.Nop())
	entities := e.Extract(context.Background(), map[string]string{})

	assert.NotNil(t, entities)
	assert.Empty(t, entities)
	assert.Zero(t, client.Calls())
}

func TestExtract_BoundedConcurrency(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			mu.Lock()
			inFlight--
			mu.Unlock()
			return "{}", nil
		},
	}

	sections := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		sections[name] = "text"
	}

	e := NewExtractor(client, zerolog.Nop()).WithConcurrency(2)
	entities := e.Extract(context.Background(), sections)

	assert.Len(t, entities, 8)
	assert.LessOrEqual(t, maxInFlight, 2)
}

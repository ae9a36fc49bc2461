package assemble

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	calls            int
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.calls++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }
func (m *MockLLMClient) Close() error                    { return nil }

const assembledReply = `{
	"contact_info": {"name": "John Doe", "email": "john@example.com"},
	"education": [{"institution": "MIT", "degree": "BSc", "start_date": "2014-09", "end_date": "2018-06"}],
	"work_experience": [{"company": "TechCorp", "position": "Engineer", "start_date": "2018-07", "end_date": "PRESENT", "responsibilities": ["Built services"]}],
	"skills": [{"name": "Go", "original_text": "Golang", "category": "TECHNICAL"}],
	"extraction_confidence": {"contact_info": 0.95, "education": 0.9, "work_experience": 0.85, "skills": 0.8}
}`

var sampleEntities = map[string]any{
	"contact_info":    map[string]any{"name": "John Doe"},
	"education":       map[string]any{"entries": []any{}},
	"work_experience": map[string]any{"entries": []any{}},
	"skills":          []any{"Go"},
}

func TestAssemble_Success(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return assembledReply, nil
		},
	}

	a := NewAssembler(client, zerolog.Nop())
	result := a.Assemble(context.Background(), sampleEntities, "en", "pdf")

	require.NotNil(t, result)
	assert.Equal(t, "John Doe", result.ContactInfo.Name)
	assert.Equal(t, "en", result.DocumentLanguage)
	assert.Equal(t, "pdf", result.FileFormat)
	assert.Empty(t, result.ParsingErrors)
	assert.Len(t, result.WorkExperience, 1)
	assert.Equal(t, "PRESENT", result.WorkExperience[0].EndDate)
	assert.NoError(t, result.Validate())
}

func TestAssemble_UsesAdvancedTier(t *testing.T) {
	var seenTier llm.ModelTier
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			seenTier = tier
			return assembledReply, nil
		},
	}

	a := NewAssembler(client, zerolog.Nop())
	a.Assemble(context.Background(), sampleEntities, "en", "pdf")

	assert.Equal(t, llm.TierAdvanced, seenTier)
}

func TestAssemble_EmptyEntitiesIsMinimalWithoutCall(t *testing.T) {
	client := &MockLLMClient{}

	a := NewAssembler(client, zerolog.Nop())
	result := a.Assemble(context.Background(), map[string]any{}, "unknown", "txt")

	require.NotNil(t, result)
	assert.Equal(t, "Unknown", result.ContactInfo.Name)
	assert.Empty(t, result.Education)
	assert.Empty(t, result.WorkExperience)
	assert.Empty(t, result.Skills)
	assert.Zero(t, client.calls)
}

func TestAssemble_ParseFailureDegradesToMinimal(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "Sorry, I cannot produce that.", nil
		},
	}

	a := NewAssembler(client, zerolog.Nop())
	result := a.Assemble(context.Background(), sampleEntities, "en", "pdf")

	require.NotNil(t, result)
	assert.Equal(t, "Unknown", result.ContactInfo.Name)
	require.NotEmpty(t, result.ParsingErrors)
	assert.Contains(t, result.ParsingErrors[0], "parse")
	assert.Equal(t, "pdf", result.FileFormat)
	assert.NoError(t, result.Validate())
}

func TestAssemble_GenerationErrorDegradesToMinimal(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	a := NewAssembler(client, zerolog.Nop())
	result := a.Assemble(context.Background(), sampleEntities, "en", "pdf")

	require.NotEmpty(t, result.ParsingErrors)
	assert.Contains(t, result.ParsingErrors[0], "quota exceeded")
}

func TestAssemble_InvalidResultDegradesToMinimal(t *testing.T) {
	// Name missing entirely: fails schema validation.
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"contact_info": {"email": "x@y.z"}, "education": [], "work_experience": [], "skills": []}`, nil
		},
	}

	a := NewAssembler(client, zerolog.Nop())
	result := a.Assemble(context.Background(), sampleEntities, "en", "pdf")

	assert.Equal(t, "Unknown", result.ContactInfo.Name)
	require.NotEmpty(t, result.ParsingErrors)
	assert.Contains(t, result.ParsingErrors[0], "validation")
}

func TestAssemble_ClampsConfidence(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{
				"contact_info": {"name": "John Doe"},
				"education": [], "work_experience": [], "skills": [],
				"extraction_confidence": {"contact_info": 1.7, "skills": -0.2}
			}`, nil
		},
	}

	a := NewAssembler(client, zerolog.Nop())
	result := a.Assemble(context.Background(), sampleEntities, "en", "pdf")

	assert.Empty(t, result.ParsingErrors)
	assert.Equal(t, 1.0, result.ExtractionConfidence["contact_info"])
	assert.Equal(t, 0.0, result.ExtractionConfidence["skills"])
}

func TestAssemble_DefaultsLanguageWhenUnset(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return assembledReply, nil
		},
	}

	a := NewAssembler(client, zerolog.Nop())
	result := a.Assemble(context.Background(), sampleEntities, "", "txt")

	assert.Equal(t, types.LanguageUnknown, result.DocumentLanguage)
}

package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnalysisResult_Valid(t *testing.T) {
	doc := `{
		"contact_info": {"name": "John Doe", "email": "john@example.com"},
		"education": [{"institution": "MIT", "degree": "BSc", "start_date": "2014-09", "end_date": "2018-06"}],
		"work_experience": [{"company": "TechCorp", "position": "Engineer", "start_date": "2018-07", "end_date": "PRESENT", "responsibilities": ["Built services"]}],
		"skills": [{"name": "Go", "original_text": "Golang", "category": "TECHNICAL", "proficiency": 0.9}],
		"extraction_confidence": {"contact_info": 0.9, "education": 0.8},
		"document_language": "en",
		"file_format": "pdf",
		"parsing_errors": []
	}`

	assert.NoError(t, ValidateAnalysisResult(doc))
}

func TestValidateAnalysisResult_MinimalResult(t *testing.T) {
	doc := `{
		"contact_info": {"name": "Unknown"},
		"education": [],
		"work_experience": [],
		"skills": [],
		"parsing_errors": ["failed to parse assembly response"]
	}`

	assert.NoError(t, ValidateAnalysisResult(doc))
}

func TestValidateAnalysisResult_MissingContactInfo(t *testing.T) {
	doc := `{"education": [], "work_experience": [], "skills": []}`

	err := ValidateAnalysisResult(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateAnalysisResult_EmptyName(t *testing.T) {
	doc := `{
		"contact_info": {"name": ""},
		"education": [],
		"work_experience": [],
		"skills": []
	}`

	err := ValidateAnalysisResult(doc)
	require.Error(t, err)
}

func TestValidateAnalysisResult_ConfidenceOutOfRange(t *testing.T) {
	doc := `{
		"contact_info": {"name": "John Doe"},
		"education": [],
		"work_experience": [],
		"skills": [],
		"extraction_confidence": {"skills": 1.5}
	}`

	err := ValidateAnalysisResult(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, validationErr.Error(), "skills")
}

func TestValidateAnalysisResult_BadSkillCategory(t *testing.T) {
	doc := `{
		"contact_info": {"name": "John Doe"},
		"education": [],
		"work_experience": [],
		"skills": [{"name": "Go", "original_text": "Go", "category": "WIZARDRY"}]
	}`

	err := ValidateAnalysisResult(doc)
	require.Error(t, err)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": "nonsense"}`, `{}`)
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "error should be SchemaLoadError type")
}

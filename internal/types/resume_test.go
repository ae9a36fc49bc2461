package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimalResult(t *testing.T) {
	result := MinimalResult("assembler output was not valid JSON")

	assert.Equal(t, "Unknown", result.ContactInfo.Name)
	assert.NotNil(t, result.Education)
	assert.Empty(t, result.Education)
	assert.NotNil(t, result.WorkExperience)
	assert.Empty(t, result.WorkExperience)
	assert.NotNil(t, result.Skills)
	assert.Empty(t, result.Skills)
	assert.Equal(t, LanguageUnknown, result.DocumentLanguage)
	require.Len(t, result.ParsingErrors, 1)
	assert.Contains(t, result.ParsingErrors[0], "valid JSON")

	require.NoError(t, result.Validate())
}

func TestMeanConfidence(t *testing.T) {
	tests := []struct {
		name       string
		confidence map[string]float64
		want       float64
	}{
		{
			name:       "empty map averages to zero",
			confidence: map[string]float64{},
			want:       0.0,
		},
		{
			name: "missing keys count as zero",
			confidence: map[string]float64{
				SectionContactInfo: 0.7,
			},
			want: 0.1,
		},
		{
			name: "all sections present",
			confidence: map[string]float64{
				SectionContactInfo:    0.7,
				SectionEducation:      0.7,
				SectionWorkExperience: 0.7,
				SectionSkills:         0.7,
				SectionProjects:       0.7,
				SectionCertifications: 0.7,
				SectionLanguages:      0.7,
			},
			want: 0.7,
		},
		{
			name: "keys outside the known set are ignored",
			confidence: map[string]float64{
				"hobbies": 1.0,
			},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MinimalResult()
			result.ExtractionConfidence = tt.confidence
			assert.InDelta(t, tt.want, result.MeanConfidence(), 1e-9)
		})
	}
}

func TestClampConfidence(t *testing.T) {
	result := MinimalResult()
	result.ExtractionConfidence = map[string]float64{
		SectionContactInfo: 1.3,
		SectionEducation:   -0.2,
		SectionSkills:      0.5,
	}

	result.ClampConfidence()

	assert.Equal(t, 1.0, result.ExtractionConfidence[SectionContactInfo])
	assert.Equal(t, 0.0, result.ExtractionConfidence[SectionEducation])
	assert.Equal(t, 0.5, result.ExtractionConfidence[SectionSkills])
}

func TestNormalize_NilListsBecomeEmpty(t *testing.T) {
	result := &ResumeAnalysisResult{ContactInfo: ContactInfo{Name: "Ada Lovelace"}}
	result.Normalize()

	assert.NotNil(t, result.Education)
	assert.NotNil(t, result.WorkExperience)
	assert.NotNil(t, result.Skills)
	assert.NotNil(t, result.ExtractionConfidence)
	assert.Equal(t, LanguageUnknown, result.DocumentLanguage)
}

func TestValidate_RejectsOutOfRangeProficiency(t *testing.T) {
	bad := 1.5
	result := MinimalResult()
	result.Skills = []Skill{{
		Name:         "Go",
		OriginalText: "Golang",
		Category:     SkillTechnical,
		Proficiency:  &bad,
	}}

	assert.Error(t, result.Validate())
}

func TestValidate_RejectsUnknownSkillCategory(t *testing.T) {
	result := MinimalResult()
	result.Skills = []Skill{{
		Name:         "Go",
		OriginalText: "Golang",
		Category:     SkillCategory("MYSTERY"),
	}}

	assert.Error(t, result.Validate())
}

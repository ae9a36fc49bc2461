package quality

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func threshold(v float64) *float64 { return &v }

func passingResult() *types.ResumeAnalysisResult {
	return &types.ResumeAnalysisResult{
		ContactInfo: types.ContactInfo{Name: "John Doe", Email: "john@example.com"},
		Education: []types.EducationEntry{
			{Institution: "MIT", Degree: "BSc", StartDate: "2014-09", EndDate: "2018-06"},
		},
		WorkExperience: []types.WorkExperienceEntry{
			{Company: "TechCorp", Position: "Engineer", StartDate: "2018-07", EndDate: types.DatePresent},
		},
		Skills: []types.Skill{
			{Name: "Go", OriginalText: "Golang", Category: types.SkillTechnical},
		},
		ExtractionConfidence: map[string]float64{
			"contact_info":    0.95,
			"education":       0.9,
			"work_experience": 0.9,
			"skills":          0.85,
			"projects":        0.8,
			"certifications":  0.8,
			"languages":       0.8,
		},
		DocumentLanguage: "en",
	}
}

func TestPasses_CompleteResult(t *testing.T) {
	gate := NewGate(DefaultConfig(), zerolog.Nop())
	assert.True(t, gate.Passes(passingResult()))
}

func TestPasses_MinimalResultFailsOnContactInfo(t *testing.T) {
	gate := NewGate(DefaultConfig(), zerolog.Nop())
	assert.False(t, gate.Passes(types.MinimalResult()))
}

func TestPasses_MissingSkillsFails(t *testing.T) {
	result := passingResult()
	result.Skills = []types.Skill{}

	gate := NewGate(DefaultConfig(), zerolog.Nop())
	assert.False(t, gate.Passes(result))
}

func TestPasses_SkillsNotRequiredPasses(t *testing.T) {
	result := passingResult()
	result.Skills = []types.Skill{}

	gate := NewGate(Config{
		RequiredSections: []string{types.SectionContactInfo, types.SectionEducation},
		MinConfidence:    threshold(0.5),
	}, zerolog.Nop())
	assert.True(t, gate.Passes(result))
}

func TestPasses_ParsingErrorsFail(t *testing.T) {
	result := passingResult()
	result.ParsingErrors = []string{"failed to parse assembly response"}

	gate := NewGate(DefaultConfig(), zerolog.Nop())
	assert.False(t, gate.Passes(result))
}

func TestPasses_MeanConfidenceBelowThresholdFails(t *testing.T) {
	result := passingResult()
	// One strong section, the other six missing: mean over the seven
	// scored sections is 0.7/7, well under the default threshold.
	result.ExtractionConfidence = map[string]float64{"contact_info": 0.7}

	gate := NewGate(DefaultConfig(), zerolog.Nop())
	assert.False(t, gate.Passes(result))
}

func TestPasses_MissingConfidenceKeysCountAsZero(t *testing.T) {
	result := passingResult()
	result.ExtractionConfidence = map[string]float64{
		"contact_info":    1.0,
		"education":       1.0,
		"work_experience": 1.0,
		"skills":          1.0,
	}
	// 4.0 / 7 ≈ 0.57 < 0.7

	gate := NewGate(DefaultConfig(), zerolog.Nop())
	assert.False(t, gate.Passes(result))
}

func TestPasses_ConfigurableThreshold(t *testing.T) {
	result := passingResult()
	result.ExtractionConfidence = map[string]float64{
		"contact_info":    1.0,
		"education":       1.0,
		"work_experience": 1.0,
		"skills":          1.0,
	}

	gate := NewGate(Config{MinConfidence: threshold(0.5)}, zerolog.Nop())
	assert.True(t, gate.Passes(result))
}

func TestPasses_ZeroThresholdDisablesConfidenceRule(t *testing.T) {
	result := passingResult()
	result.ExtractionConfidence = map[string]float64{}

	// An explicit zero threshold is a configuration, not "unset": the
	// confidence rule must not fall back to the default floor.
	gate := NewGate(Config{MinConfidence: threshold(0)}, zerolog.Nop())
	assert.True(t, gate.Passes(result))

	// Unset still means the default floor.
	defaulted := NewGate(Config{}, zerolog.Nop())
	assert.False(t, defaulted.Passes(result))
}

func TestPasses_Idempotent(t *testing.T) {
	gate := NewGate(DefaultConfig(), zerolog.Nop())
	result := passingResult()

	first := gate.Passes(result)
	second := gate.Passes(result)
	assert.Equal(t, first, second)

	failing := types.MinimalResult()
	assert.Equal(t, gate.Passes(failing), gate.Passes(failing))
}

func TestPasses_EmptyNameFails(t *testing.T) {
	result := passingResult()
	result.ContactInfo.Name = ""

	gate := NewGate(DefaultConfig(), zerolog.Nop())
	assert.False(t, gate.Passes(result))
}

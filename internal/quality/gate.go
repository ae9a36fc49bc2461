// Package quality evaluates assembled analysis results against minimum
// completeness and confidence thresholds.
package quality

import (
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultMinConfidence is the mean extraction-confidence floor. It is a
// policy default, not load-bearing business logic; override via Config.
const DefaultMinConfidence = 0.7

// Config is the gate policy: which sections must be present and how
// confident the extraction must be on average. MinConfidence is a
// pointer so that an explicit zero (confidence rule disabled) is
// distinguishable from unset (use the default).
type Config struct {
	RequiredSections []string `json:"required_sections"`
	MinConfidence    *float64 `json:"min_confidence,omitempty"`
}

// DefaultConfig returns the standard gate policy.
func DefaultConfig() Config {
	min := DefaultMinConfidence
	return Config{
		RequiredSections: []string{
			types.SectionContactInfo,
			types.SectionEducation,
			types.SectionWorkExperience,
			types.SectionSkills,
		},
		MinConfidence: &min,
	}
}

// Gate is a pure pass/fail check over a result. Evaluating the same
// result twice yields the same answer.
type Gate struct {
	requiredSections []string
	minConfidence    float64
	logger           zerolog.Logger
}

// NewGate creates a gate with the given policy. Unset config fields
// fall back to defaults.
func NewGate(config Config, logger zerolog.Logger) *Gate {
	sections := config.RequiredSections
	if sections == nil {
		sections = DefaultConfig().RequiredSections
	}
	min := DefaultMinConfidence
	if config.MinConfidence != nil {
		min = *config.MinConfidence
	}
	return &Gate{requiredSections: sections, minConfidence: min, logger: logger}
}

// Passes reports whether the result meets the gate policy. Rules run in
// order and short-circuit on the first failure; each failure is logged
// with its specific cause so callers know why a result was rejected.
func (g *Gate) Passes(result *types.ResumeAnalysisResult) bool {
	for _, section := range g.requiredSections {
		if !g.sectionPresent(result, section) {
			g.logger.Info().
				Str("rule", "required_sections").
				Str("section", section).
				Msg("quality gate failed: required section is missing or empty")
			return false
		}
	}

	if len(result.ParsingErrors) > 0 {
		g.logger.Info().
			Str("rule", "parsing_errors").
			Strs("errors", result.ParsingErrors).
			Msg("quality gate failed: result carries parsing errors")
		return false
	}

	if mean := result.MeanConfidence(); mean < g.minConfidence {
		g.logger.Info().
			Str("rule", "min_confidence").
			Float64("mean", mean).
			Float64("threshold", g.minConfidence).
			Msg("quality gate failed: mean extraction confidence below threshold")
		return false
	}

	return true
}

// sectionPresent reports whether a required section carries content.
// Contact info requires a non-placeholder name; list sections require at
// least one entry. Sections the result does not model always pass.
func (g *Gate) sectionPresent(result *types.ResumeAnalysisResult, section string) bool {
	switch section {
	case types.SectionContactInfo:
		return result.ContactInfo.Name != "" && result.ContactInfo.Name != "Unknown"
	case types.SectionEducation:
		return len(result.Education) > 0
	case types.SectionWorkExperience:
		return len(result.WorkExperience) > 0
	case types.SectionSkills:
		return len(result.Skills) > 0
	case types.SectionProjects:
		return len(result.Projects) > 0
	case types.SectionCertifications:
		return len(result.Certifications) > 0
	case types.SectionLanguages:
		return len(result.Languages) > 0
	default:
		return true
	}
}

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// languageNames maps common ISO 639-1 codes to display names. Codes
// outside this set are shown as-is.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"pt": "Portuguese",
	"it": "Italian",
	"nl": "Dutch",
	"pl": "Polish",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
	"hi": "Hindi",
}

// Report is the human-readable summary of one analysis run.
type Report struct {
	SectionCounts   map[string]int     `json:"section_counts"`
	Confidence      map[string]float64 `json:"confidence"`
	MeanConfidence  float64            `json:"mean_confidence"`
	Language        string             `json:"language"`
	FileFormat      string             `json:"file_format,omitempty"`
	ParsingErrors   []string           `json:"parsing_errors,omitempty"`
	MissingSections []string           `json:"missing_sections,omitempty"`
	Accuracy        *AccuracyMetrics   `json:"accuracy,omitempty"`
}

// GenerateReport summarizes the stored result: per-section extraction
// counts and confidence, language, format, errors, missing sections and
// accuracy metrics when previously computed. Returns ErrNotAnalyzed
// before a run.
func (p *Pipeline) GenerateReport(ctx context.Context) (*Report, error) {
	if p.result == nil {
		return nil, fmt.Errorf("cannot generate report: %w", ErrNotAnalyzed)
	}

	report := buildReport(p.result, p.accuracy)

	if p.deps.Artifacts != nil && p.runID != uuid.Nil {
		if err := p.deps.Artifacts.SaveTextArtifact(ctx, p.runID, store.StepReport, store.CategoryEvaluation, report.String()); err != nil {
			p.deps.Logger.Warn().Err(err).Msg("failed to save report artifact, continuing")
		}
	}

	return report, nil
}

func buildReport(result *types.ResumeAnalysisResult, accuracy *AccuracyMetrics) *Report {
	counts := map[string]int{
		types.SectionEducation:      len(result.Education),
		types.SectionWorkExperience: len(result.WorkExperience),
		types.SectionSkills:         len(result.Skills),
		types.SectionProjects:       len(result.Projects),
		types.SectionCertifications: len(result.Certifications),
		types.SectionLanguages:      len(result.Languages),
	}

	var missing []string
	if result.ContactInfo.Name == "" || result.ContactInfo.Name == "Unknown" {
		missing = append(missing, types.SectionContactInfo)
	}
	for _, section := range []string{
		types.SectionEducation,
		types.SectionWorkExperience,
		types.SectionSkills,
		types.SectionProjects,
		types.SectionCertifications,
		types.SectionLanguages,
	} {
		if counts[section] == 0 {
			missing = append(missing, section)
		}
	}

	language := result.DocumentLanguage
	if name, ok := languageNames[language]; ok {
		language = name
	}

	return &Report{
		SectionCounts:   counts,
		Confidence:      result.ExtractionConfidence,
		MeanConfidence:  result.MeanConfidence(),
		Language:        language,
		FileFormat:      result.FileFormat,
		ParsingErrors:   result.ParsingErrors,
		MissingSections: missing,
		Accuracy:        accuracy,
	}
}

// String renders the report for terminal output.
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Resume Analysis Report\n")
	sb.WriteString("======================\n\n")

	sb.WriteString(fmt.Sprintf("Language:    %s\n", r.Language))
	if r.FileFormat != "" {
		sb.WriteString(fmt.Sprintf("File format: %s\n", r.FileFormat))
	}
	sb.WriteString(fmt.Sprintf("Confidence:  %.2f (mean)\n\n", r.MeanConfidence))

	sb.WriteString("Sections:\n")
	for _, section := range []string{
		types.SectionEducation,
		types.SectionWorkExperience,
		types.SectionSkills,
		types.SectionProjects,
		types.SectionCertifications,
		types.SectionLanguages,
	} {
		sb.WriteString(fmt.Sprintf("  %-16s %3d entries  (confidence %.2f)\n",
			section, r.SectionCounts[section], r.Confidence[section]))
	}

	if len(r.MissingSections) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing sections: %s\n", strings.Join(r.MissingSections, ", ")))
	}

	if len(r.ParsingErrors) > 0 {
		sb.WriteString("\nParsing errors:\n")
		for _, e := range r.ParsingErrors {
			sb.WriteString(fmt.Sprintf("  - %s\n", e))
		}
	}

	if r.Accuracy != nil {
		sb.WriteString(fmt.Sprintf("\nAccuracy vs ground truth: %.2f overall\n", r.Accuracy.Overall))
		for section, score := range r.Accuracy.PerSection {
			sb.WriteString(fmt.Sprintf("  %-16s %.2f\n", section, score))
		}
	}

	return sb.String()
}

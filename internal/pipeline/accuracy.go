package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// listMatchThreshold is the similarity floor for counting a ground-truth
// list item as matched by an extracted entry.
const listMatchThreshold = 0.8

// AccuracyMetrics holds per-section accuracy against ground truth plus
// the overall average.
type AccuracyMetrics struct {
	PerSection map[string]float64 `json:"per_section"`
	Overall    float64            `json:"overall"`
}

// EvaluateAccuracy compares the stored result against a caller-supplied
// ground-truth mapping. Ground truth carries, per section, either a
// field mapping (contact_info) or a list of expected entries compared
// by character-overlap similarity. Returns ErrNotAnalyzed before a run.
func (p *Pipeline) EvaluateAccuracy(ctx context.Context, groundTruth map[string]any) (*AccuracyMetrics, error) {
	if p.result == nil {
		return nil, fmt.Errorf("cannot evaluate accuracy: %w", ErrNotAnalyzed)
	}

	metrics := evaluateAccuracy(p.result, groundTruth)
	p.accuracy = metrics

	if p.deps.Artifacts != nil && p.runID != uuid.Nil {
		if err := p.deps.Artifacts.SaveArtifact(ctx, p.runID, store.StepAccuracy, store.CategoryEvaluation, metrics); err != nil {
			p.deps.Logger.Warn().Err(err).Msg("failed to save accuracy artifact, continuing")
		}
	}

	return metrics, nil
}

func evaluateAccuracy(result *types.ResumeAnalysisResult, groundTruth map[string]any) *AccuracyMetrics {
	metrics := &AccuracyMetrics{PerSection: map[string]float64{}}

	for section, expected := range groundTruth {
		switch section {
		case types.SectionContactInfo:
			fields, ok := expected.(map[string]any)
			if !ok {
				metrics.PerSection[section] = 0
				continue
			}
			metrics.PerSection[section] = contactAccuracy(result.ContactInfo, fields)
		default:
			items, ok := expected.([]any)
			if !ok {
				metrics.PerSection[section] = 0
				continue
			}
			metrics.PerSection[section] = listAccuracy(sectionStrings(result, section), items)
		}
	}

	if len(metrics.PerSection) > 0 {
		var sum float64
		for _, v := range metrics.PerSection {
			sum += v
		}
		metrics.Overall = sum / float64(len(metrics.PerSection))
	}
	return metrics
}

// contactAccuracy scores contact info by per-field equality over the
// fields the ground truth names.
func contactAccuracy(actual types.ContactInfo, expected map[string]any) float64 {
	if len(expected) == 0 {
		return 1
	}

	got := map[string]string{
		"name":     actual.Name,
		"email":    actual.Email,
		"phone":    actual.Phone,
		"location": actual.Location,
	}

	matched := 0
	for field, want := range expected {
		wantStr, ok := want.(string)
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(got[field]), strings.TrimSpace(wantStr)) {
			matched++
		}
	}
	return float64(matched) / float64(len(expected))
}

// listAccuracy scores a list section: the fraction of ground-truth items
// matched by at least one extracted entry above the similarity floor.
func listAccuracy(actual []string, expected []any) float64 {
	if len(expected) == 0 {
		return 1
	}

	matched := 0
	for _, item := range expected {
		want := itemString(item)
		if want == "" {
			continue
		}
		for _, got := range actual {
			if charOverlapSimilarity(want, got) >= listMatchThreshold {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(expected))
}

// sectionStrings flattens a result section into comparable strings.
func sectionStrings(result *types.ResumeAnalysisResult, section string) []string {
	var out []string
	switch section {
	case types.SectionEducation:
		for _, e := range result.Education {
			out = append(out, joinNonEmpty(e.Institution, e.Degree, e.FieldOfStudy))
		}
	case types.SectionWorkExperience:
		for _, w := range result.WorkExperience {
			out = append(out, joinNonEmpty(w.Company, w.Position))
		}
	case types.SectionSkills:
		for _, s := range result.Skills {
			out = append(out, s.Name)
		}
	case types.SectionProjects:
		for _, p := range result.Projects {
			out = append(out, p.Name)
		}
	case types.SectionCertifications:
		for _, c := range result.Certifications {
			out = append(out, joinNonEmpty(c.Name, c.Issuer))
		}
	case types.SectionLanguages:
		for _, l := range result.Languages {
			out = append(out, l.Name)
		}
	}
	return out
}

// itemString renders one ground-truth list item for comparison. Maps
// are flattened by joining their string values.
func itemString(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any:
		var parts []string
		for _, value := range v {
			if s, ok := value.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// charOverlapSimilarity is the shared-character count over the
// total-unique-character count, case-insensitive. Deliberately naive:
// it reproduces the historical scoring behavior rather than a standard
// edit-distance or token metric.
func charOverlapSimilarity(a, b string) float64 {
	setA := charSet(a)
	setB := charSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}

	shared := 0
	union := len(setB)
	for r := range setA {
		if _, ok := setB[r]; ok {
			shared++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func charSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range strings.ToLower(s) {
		set[r] = struct{}{}
	}
	return set
}

package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/assemble"
	"github.com/jonathan/resume-analyzer/internal/entities"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/language"
	"github.com/jonathan/resume-analyzer/internal/normalize"
	"github.com/jonathan/resume-analyzer/internal/quality"
	"github.com/jonathan/resume-analyzer/internal/segmentation"
	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultCallTimeout bounds each external model or OCR round-trip. A
// timed-out call degrades the same way a parse failure does in the
// corresponding stage.
const DefaultCallTimeout = 60 * time.Second

// Input is one document to analyze: either raw file bytes or
// pre-extracted text. SourceName is informational (run records, logs).
type Input struct {
	FileBytes  []byte
	RawText    string
	SourceName string
}

// analysisStage is the single composite stage of the resume assistant:
// extraction, language detection, segmentation, entity extraction,
// normalization and assembly, run strictly in sequence. One instance
// serves one run.
type analysisStage struct {
	extraction  *extraction.Service
	detector    *language.Detector
	segmenter   *segmentation.Segmenter
	entities    *entities.Extractor
	normalizer  *normalize.Normalizer
	assembler   *assemble.Assembler
	gate        *quality.Gate
	artifacts   *store.Store
	runID       uuid.UUID
	callTimeout time.Duration
	input       Input
	logger      zerolog.Logger

	// sections holds the segmentation output for callers that want to
	// inspect it after the run.
	sections map[string]string
}

func (s *analysisStage) Name() string { return "resume_analysis" }

// Execute runs the full analysis sequence. Only extraction-class and
// input-configuration errors surface; every model-dependent stage
// degrades in place so the stage always produces a result when there is
// text to work with.
func (s *analysisStage) Execute(ctx context.Context, _ []any) (any, error) {
	extracted, err := s.extractText(ctx)
	if err != nil {
		return nil, err
	}
	s.saveTextArtifact(ctx, store.StepExtractedText, store.CategoryExtraction, extracted.Text)

	langCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	lang := s.detector.Detect(langCtx, extracted.Text)
	cancel()
	s.saveTextArtifact(ctx, store.StepDocumentLanguage, store.CategoryAnalysis, lang)

	segCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	sections := s.segmenter.Segment(segCtx, extracted.Text)
	cancel()
	s.sections = sections
	s.saveArtifact(ctx, store.StepSections, store.CategoryAnalysis, sections)

	// The extractor bounds its own per-section calls.
	extractedEntities := s.entities.Extract(ctx, sections)
	s.saveArtifact(ctx, store.StepEntities, store.CategoryAnalysis, extractedEntities)

	datesCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	normalized := s.normalizer.Dates(datesCtx, extractedEntities)
	cancel()

	skillsCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	normalized = s.normalizer.Skills(skillsCtx, normalized)
	cancel()
	s.saveArtifact(ctx, store.StepNormalizedEntities, store.CategoryAnalysis, normalized)

	asmCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	result := s.assembler.Assemble(asmCtx, normalized, lang, extracted.SourceFormat)
	cancel()
	s.saveArtifact(ctx, store.StepAnalysisResult, store.CategoryAnalysis, result)

	return result, nil
}

// Passes delegates to the quality gate.
func (s *analysisStage) Passes(result any) bool {
	analysis, ok := result.(*types.ResumeAnalysisResult)
	if !ok {
		return false
	}
	return s.gate.Passes(analysis)
}

// extractText resolves the input into plain text. File bytes win over
// raw text when both are present.
func (s *analysisStage) extractText(ctx context.Context) (*extraction.ExtractedText, error) {
	if len(s.input.FileBytes) > 0 {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		return s.extraction.Extract(callCtx, s.input.FileBytes)
	}
	if s.input.RawText != "" {
		return s.extraction.FromText(s.input.RawText), nil
	}
	return nil, extraction.ErrNoInput
}

// saveArtifact persists a JSON stage artifact. Persistence is optional
// and never blocks analysis: without a store this is a no-op, and a
// save failure is logged and ignored.
func (s *analysisStage) saveArtifact(ctx context.Context, step, category string, content any) {
	if s.artifacts == nil {
		return
	}
	if err := s.artifacts.SaveArtifact(ctx, s.runID, step, category, content); err != nil {
		s.logger.Warn().Err(err).Str("step", step).Msg("failed to save artifact, continuing")
	}
}

func (s *analysisStage) saveTextArtifact(ctx context.Context, step, category, text string) {
	if s.artifacts == nil {
		return
	}
	if err := s.artifacts.SaveTextArtifact(ctx, s.runID, step, category, text); err != nil {
		s.logger.Warn().Err(err).Str("step", step).Msg("failed to save text artifact, continuing")
	}
}

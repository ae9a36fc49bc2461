package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/assemble"
	"github.com/jonathan/resume-analyzer/internal/entities"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/language"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/normalize"
	"github.com/jonathan/resume-analyzer/internal/quality"
	"github.com/jonathan/resume-analyzer/internal/segmentation"
	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/vision"
)

// ErrNotAnalyzed is returned when evaluation or reporting is requested
// before a successful Analyze call.
var ErrNotAnalyzed = errors.New("no analysis result available: call Analyze first")

// Deps are the capabilities and policies a Pipeline is composed from.
// LLM and Detector are required; Artifacts is optional persistence.
type Deps struct {
	LLM         llm.Client
	Detector    vision.TextDetector
	Artifacts   *store.Store
	Gate        quality.Config
	CallTimeout time.Duration
	Concurrency int
	Logger      zerolog.Logger
}

// Pipeline owns one analysis run's lifecycle: it drives the assistant
// chain, keeps the produced result, and offers accuracy evaluation and
// report generation over it. Re-running Analyze replaces the stored
// result and clears any computed accuracy.
type Pipeline struct {
	deps     Deps
	gate     *quality.Gate
	result   *types.ResumeAnalysisResult
	sections map[string]string
	accuracy *AccuracyMetrics
	runID    uuid.UUID
}

// New creates a pipeline from its dependencies, filling policy defaults.
func New(deps Deps) *Pipeline {
	if deps.CallTimeout <= 0 {
		deps.CallTimeout = DefaultCallTimeout
	}
	return &Pipeline{
		deps: deps,
		gate: quality.NewGate(deps.Gate, deps.Logger),
	}
}

// Analyze runs the assistant chain over the input and stores the result.
// Hard errors (no input, unsupported file type, extraction failure)
// surface; everything else degrades into the returned result, whose
// ParsingErrors and ExtractionConfidence tell the caller how healthy the
// extraction was.
func (p *Pipeline) Analyze(ctx context.Context, input Input) (*types.ResumeAnalysisResult, error) {
	logger := p.deps.Logger

	runID := p.createRun(ctx, input)

	stage := &analysisStage{
		extraction:  extraction.NewService(p.deps.Detector, logger),
		detector:    language.NewDetector(p.deps.LLM, logger),
		segmenter:   segmentation.NewSegmenter(p.deps.LLM, logger),
		entities:    entities.NewExtractor(p.deps.LLM, logger).WithConcurrency(p.deps.Concurrency).WithCallTimeout(p.deps.CallTimeout),
		normalizer:  normalize.NewNormalizer(p.deps.LLM, logger),
		assembler:   assemble.NewAssembler(p.deps.LLM, logger),
		gate:        p.gate,
		artifacts:   p.deps.Artifacts,
		runID:       runID,
		callTimeout: p.deps.CallTimeout,
		input:       input,
		logger:      logger,
	}

	out, err := NewChain(logger, stage).Run(ctx)
	if err != nil {
		p.completeRun(ctx, runID, store.StatusFailed)
		return nil, err
	}

	result, ok := out.(*types.ResumeAnalysisResult)
	if !ok || result == nil {
		result = types.MinimalResult("analysis produced no result")
	}

	p.result = result
	p.sections = stage.sections
	p.accuracy = nil
	p.runID = runID
	p.completeRun(ctx, runID, store.StatusCompleted)

	return result, nil
}

// Result returns the stored analysis result, or nil before Analyze.
func (p *Pipeline) Result() *types.ResumeAnalysisResult {
	return p.result
}

// Sections returns the segmented sections of the last analyzed
// document, or nil before Analyze.
func (p *Pipeline) Sections() map[string]string {
	return p.sections
}

// RunID returns the persisted run ID, or uuid.Nil when persistence is
// not configured.
func (p *Pipeline) RunID() uuid.UUID {
	return p.runID
}

// createRun records the run if persistence is configured. Failures warn
// and continue; analysis never depends on the database.
func (p *Pipeline) createRun(ctx context.Context, input Input) uuid.UUID {
	if p.deps.Artifacts == nil {
		return uuid.Nil
	}
	sourceName := input.SourceName
	if sourceName == "" {
		sourceName = "(raw text)"
	}
	runID, err := p.deps.Artifacts.CreateRun(ctx, sourceName, "")
	if err != nil {
		p.deps.Logger.Warn().Err(err).Msg("failed to create run record, continuing without persistence")
		return uuid.Nil
	}
	return runID
}

func (p *Pipeline) completeRun(ctx context.Context, runID uuid.UUID, status string) {
	if p.deps.Artifacts == nil || runID == uuid.Nil {
		return
	}
	if err := p.deps.Artifacts.CompleteRun(ctx, runID, status); err != nil {
		p.deps.Logger.Warn().Err(err).Msg("failed to complete run record, continuing")
	}
}

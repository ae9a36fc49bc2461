// Package entities extracts structured objects from segmented resume
// sections, one LLM call per section.
package entities

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/llm"
)

// DefaultConcurrency bounds parallel per-section extraction calls.
const DefaultConcurrency = 4

// Extractor turns section text into section entities. Sections are
// independent, so extraction fans out across them; a single section's
// failure degrades that section to an empty object without touching
// the rest.
type Extractor struct {
	client      llm.Client
	logger      zerolog.Logger
	concurrency int
	callTimeout time.Duration
}

// NewExtractor creates an entity extractor around an LLM client.
func NewExtractor(client llm.Client, logger zerolog.Logger) *Extractor {
	return &Extractor{
		client:      client,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
}

// WithConcurrency overrides the parallel call bound.
func (e *Extractor) WithConcurrency(n int) *Extractor {
	if n > 0 {
		e.concurrency = n
	}
	return e
}

// WithCallTimeout bounds each per-section call. A timed-out section
// degrades like any other failed section.
func (e *Extractor) WithCallTimeout(d time.Duration) *Extractor {
	if d > 0 {
		e.callTimeout = d
	}
	return e
}

// Extract issues one structured-extraction call per section and returns
// entities keyed by section name. Every input section is present in the
// output: sections whose call or parse failed map to an empty object.
func (e *Extractor) Extract(ctx context.Context, sections map[string]string) map[string]any {
	entities := make(map[string]any, len(sections))
	if len(sections) == 0 {
		return entities
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for name, text := range sections {
		name, text := name, text // per-iteration copies for Go <1.22 loop semantics
		g.Go(func() error {
			value := e.extractSection(ctx, name, text)
			mu.Lock()
			entities[name] = value
			mu.Unlock()
			return nil
		})
	}

	// Section failures degrade in place, so the group never errors.
	_ = g.Wait()
	return entities
}

// extractSection runs one structured-extraction call. Degrades to an
// empty object on any failure.
func (e *Extractor) extractSection(ctx context.Context, section, text string) any {
	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}

	prompt := llm.BuildExtractionPrompt(llm.SectionSchema(section), text)

	reply, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("section", section).
			Msg("section extraction call failed, continuing with empty entity")
		return map[string]any{}
	}

	reply = llm.CleanJSONBlock(reply)

	var value any
	if err := json.Unmarshal([]byte(reply), &value); err != nil {
		e.logger.Warn().
			Err(err).
			Str("section", section).
			Msg("section extraction returned unparsable JSON, continuing with empty entity")
		return map[string]any{}
	}
	return value
}

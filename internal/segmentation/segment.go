// Package segmentation splits full resume text into named semantic
// sections using LLM structured output.
package segmentation

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
)

// Segmenter maps resume text to sections. Section names are free-text
// labels, not a closed enum: the prompt recommends the canonical
// vocabulary but the model may emit variants, which downstream stages
// match loosely.
type Segmenter struct {
	client llm.Client
	logger zerolog.Logger
}

// NewSegmenter creates a segmenter around an LLM client.
func NewSegmenter(client llm.Client, logger zerolog.Logger) *Segmenter {
	return &Segmenter{client: client, logger: logger}
}

// Segment splits text into a section-name to section-text mapping.
// Segmentation is best-effort: a generation or parse failure yields an
// empty mapping, never an error. Section absence is the quality gate's
// concern, not this stage's.
func (s *Segmenter) Segment(ctx context.Context, text string) map[string]string {
	if strings.TrimSpace(text) == "" {
		return map[string]string{}
	}

	template := prompts.MustGet("segment-document")
	prompt := prompts.Format(template, map[string]string{"ResumeText": text})

	reply, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		s.logger.Warn().Err(err).Msg("segmentation call failed, continuing with no sections")
		return map[string]string{}
	}

	reply = llm.CleanJSONBlock(reply)

	var sections map[string]string
	if err := json.Unmarshal([]byte(reply), &sections); err != nil {
		s.logger.Warn().
			Err(err).
			Int("reply_chars", len(reply)).
			Msg("segmentation response is not a JSON mapping, continuing with no sections")
		return map[string]string{}
	}

	// Drop whitespace-only sections so extraction never burns a call on them.
	for name, body := range sections {
		if strings.TrimSpace(body) == "" {
			delete(sections, name)
		}
	}
	if sections == nil {
		sections = map[string]string{}
	}

	s.logger.Debug().Int("sections", len(sections)).Msg("segmented resume text")
	return sections
}

// Package normalize standardizes dates and skills across the extracted
// entities mapping. Both passes are best-effort: any failure returns the
// input untouched rather than an error.
package normalize

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
)

// Normalizer runs the date and skill standardization passes.
type Normalizer struct {
	client llm.Client
	logger zerolog.Logger
}

// NewNormalizer creates a normalizer around an LLM client.
func NewNormalizer(client llm.Client, logger zerolog.Logger) *Normalizer {
	return &Normalizer{client: client, logger: logger}
}

// Dates standardizes every date-like value in entities to YYYY-MM, with
// ongoing phrasings mapped to the PRESENT sentinel. The whole structure
// goes through in one call: dates are scattered across education, work
// experience, project and certification sub-objects, and a holistic pass
// keeps overlapping ranges consistent. On any failure the input mapping
// is returned unchanged.
func (n *Normalizer) Dates(ctx context.Context, entities map[string]any) map[string]any {
	if len(entities) == 0 {
		return entities
	}

	serialized, err := json.Marshal(entities)
	if err != nil {
		n.logger.Warn().Err(err).Msg("entities are not serializable, skipping date standardization")
		return entities
	}

	template := prompts.MustGet("normalize-dates")
	prompt := prompts.Format(template, map[string]string{"Entities": string(serialized)})

	reply, err := n.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		n.logger.Warn().Err(err).Msg("date standardization call failed, keeping original dates")
		return entities
	}

	reply = llm.CleanJSONBlock(reply)

	var normalized map[string]any
	if err := json.Unmarshal([]byte(reply), &normalized); err != nil {
		n.logger.Warn().Err(err).Msg("date standardization returned unparsable JSON, keeping original dates")
		return entities
	}

	// A reply that dropped sections wholesale is a model failure, not a
	// normalization. Keep the original rather than lose entities.
	if len(normalized) < len(entities) {
		n.logger.Warn().
			Int("before", len(entities)).
			Int("after", len(normalized)).
			Msg("date standardization dropped sections, keeping original entities")
		return entities
	}

	return normalized
}

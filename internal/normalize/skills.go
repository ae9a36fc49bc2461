package normalize

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
)

// standardizedSkill is the expected shape of one skill in the model's
// standardization reply.
type standardizedSkill struct {
	Name         string   `json:"name"`
	OriginalText string   `json:"original_text"`
	Category     string   `json:"category"`
	Proficiency  *float64 `json:"proficiency,omitempty"`
}

// Skills groups near-duplicate skill phrasings, classifies each skill
// and optionally estimates proficiency. Only runs when entities carries
// a skills key; without one this is the identity. All other keys pass
// through unchanged. On any failure the input mapping is returned
// unchanged.
func (n *Normalizer) Skills(ctx context.Context, entities map[string]any) map[string]any {
	rawSkills, ok := entities["skills"]
	if !ok {
		return entities
	}

	serialized, err := json.Marshal(rawSkills)
	if err != nil {
		n.logger.Warn().Err(err).Msg("skills entity is not serializable, skipping skill standardization")
		return entities
	}

	template := prompts.MustGet("normalize-skills")
	prompt := prompts.Format(template, map[string]string{"Skills": string(serialized)})

	reply, err := n.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		n.logger.Warn().Err(err).Msg("skill standardization call failed, keeping original skills")
		return entities
	}

	reply = llm.CleanJSONBlock(reply)

	var skills []standardizedSkill
	if err := json.Unmarshal([]byte(reply), &skills); err != nil {
		n.logger.Warn().Err(err).Msg("skill standardization returned unparsable JSON, keeping original skills")
		return entities
	}

	// A standardized skill with no name or no verbatim source would be
	// data loss dressed up as cleanup.
	kept := make([]standardizedSkill, 0, len(skills))
	for _, s := range skills {
		if s.Name == "" || s.OriginalText == "" {
			n.logger.Warn().
				Str("name", s.Name).
				Msg("dropping standardized skill with empty name or original_text")
			continue
		}
		kept = append(kept, s)
	}

	normalized := make(map[string]any, len(entities))
	for k, v := range entities {
		normalized[k] = v
	}
	normalized["skills"] = kept
	return normalized
}

// Package llm provides the model configuration and client abstraction
// shared by every analysis stage that talks to a language model.
package llm

// ModelTier buckets model calls by how much capability they need, so
// each stage runs on the cheapest model that can handle its task.
type ModelTier string

const (
	// TierLite serves short single-answer calls: language detection,
	// date and skill normalization.
	TierLite ModelTier = "lite"
	// TierStandard serves structured extraction: document segmentation
	// and per-section entity extraction.
	TierStandard ModelTier = "standard"
	// TierAdvanced serves result assembly, which reshapes all extracted
	// entities into the final document in a single call.
	TierAdvanced ModelTier = "advanced"
)

// Provider names the backing LLM service.
type Provider string

// ProviderGemini is the only implemented provider.
const ProviderGemini Provider = "gemini"

// Config maps model tiers to concrete model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard
// and then lite when the tier itself has no mapping.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier remapped. The
// receiver is left unchanged.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}

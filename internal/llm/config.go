// Package llm centralizes model configuration and the client abstraction, so
// callers ask for a capability tier instead of naming provider models.
package llm

// ModelTier buckets models by capability.
type ModelTier string

const (
	// TierLite answers the cheap per-page questions: does this page carry
	// a memorial or a plan.
	TierLite ModelTier = "lite"
	// TierStandard covers moderate structured-output work.
	TierStandard ModelTier = "standard"
	// TierAdvanced reads the coordinate tables out of scanned documents.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies an LLM provider.
type Provider string

const (
	// ProviderGemini is the only provider with a client implementation.
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is reserved; no client exists yet.
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is reserved; no client exists yet.
	ProviderAnthropic Provider = "anthropic"
)

// Config maps capability tiers to provider model names.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the Gemini setup the agent ships with: the flash-lite
// model for page verdicts, the pro model for table extraction.
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

// GetModel resolves a tier to its model name, falling back to the standard
// and then the lite tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the Config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models))
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}

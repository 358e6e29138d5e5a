package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigModels(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, ProviderGemini, config.Provider)

	// Page classification runs on the lite tier, table extraction on the
	// advanced tier; both must resolve out of the box.
	tests := []struct {
		tier ModelTier
		want string
	}{
		{TierLite, "gemini-2.5-flash-lite"},
		{TierStandard, "gemini-2.5-flash"},
		{TierAdvanced, "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.Equal(t, tt.want, config.GetModel(tt.tier))
		})
	}
}

func TestGetModelFallbackChain(t *testing.T) {
	t.Run("unknown tier falls through to lite", func(t *testing.T) {
		config := &Config{
			Provider: ProviderGemini,
			Models:   map[ModelTier]string{TierLite: "only-model"},
		}
		assert.Equal(t, "only-model", config.GetModel("unknown"))
	})

	t.Run("standard preferred over lite", func(t *testing.T) {
		config := &Config{
			Provider: ProviderGemini,
			Models: map[ModelTier]string{
				TierLite:     "lite-model",
				TierStandard: "standard-model",
			},
		}
		assert.Equal(t, "standard-model", config.GetModel("unknown"))
	})

	t.Run("no models configured", func(t *testing.T) {
		config := &Config{
			Provider: ProviderGemini,
			Models:   map[ModelTier]string{},
		}
		assert.Equal(t, "", config.GetModel(TierAdvanced))
	})
}

func TestWithModelCopies(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "custom-model", custom.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", custom.GetModel(TierLite),
		"untouched tiers carry over")
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced),
		"the original config must not change")
}

func TestTierAndProviderValues(t *testing.T) {
	// These values appear in logs and error messages, so they are part of
	// the surface.
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)

	assert.Equal(t, Provider("gemini"), ProviderGemini)
	assert.Equal(t, Provider("openai"), ProviderOpenAI)
	assert.Equal(t, Provider("anthropic"), ProviderAnthropic)
}

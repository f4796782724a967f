package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanJSONBlock(tc.input))
		})
	}
}

func TestConfigGetModel(t *testing.T) {
	t.Run("configured tier", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	})

	t.Run("unknown tier falls back to standard", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, cfg.Models[TierStandard], cfg.GetModel(ModelTier("experimental")))
	})

	t.Run("empty config returns empty string", func(t *testing.T) {
		cfg := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
		assert.Equal(t, "", cfg.GetModel(TierStandard))
	})
}

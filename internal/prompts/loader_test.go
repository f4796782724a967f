package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("existing prompt", func(t *testing.T) {
		prompt, err := Get("career.json", "analyze")
		require.NoError(t, err)
		assert.Contains(t, prompt, "{{.Resume}}")
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := Get("career.json", "nonexistent")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Get("nonexistent.json", "analyze")
		assert.Error(t, err)
	})
}

func TestFormat(t *testing.T) {
	template := "Role: {{.TargetRole}}, Domain: {{.Domain}}"
	result := Format(template, map[string]string{
		"TargetRole": "Backend Engineer",
		"Domain":     "fintech",
	})
	assert.Equal(t, "Role: Backend Engineer, Domain: fintech", result)
}

func TestAllPromptFilesParse(t *testing.T) {
	files := []string{
		"career.json", "skills.json", "learning.json",
		"projects.json", "resume.json", "jobs.json", "interview.json",
	}
	for _, f := range files {
		t.Run(f, func(t *testing.T) {
			keys, err := loadFile(f)
			require.NoError(t, err)
			assert.NotEmpty(t, keys)
			for key, prompt := range keys {
				assert.True(t, strings.Contains(prompt, "JSON"), "%s/%s should demand JSON output", f, key)
			}
		})
	}
}

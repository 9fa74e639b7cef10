package checks

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_WriteText(t *testing.T) {
	t.Run("all passed", func(t *testing.T) {
		results := []*CheckResult{
			{Name: "runtime-version", Title: "Checking Go version...", Passed: true, Items: []Item{{OK: true, Text: "go1.26.0 (compatible)"}}},
			{Name: "api-key", Title: "Checking API key...", Passed: true, Items: []Item{{OK: true, Text: "ELEVENLABS_API_KEY is set (***)"}}},
		}
		var buf bytes.Buffer
		require.NoError(t, NewReport(results).WriteText(&buf))
		out := buf.String()

		assert.Contains(t, out, "Checking Go version...\n✓ go1.26.0 (compatible)\n")
		assert.Contains(t, out, "✓ All tests passed (2/2)")
		assert.Contains(t, out, "You're ready to run the server!")
		assert.NotContains(t, out, "1. Get your API key")
		assert.NotContains(t, out, "3. Install missing dependencies")
		assert.Contains(t, out, "4. Run the server")
		assert.Contains(t, out, "5. Test with examples")
	})

	t.Run("failures", func(t *testing.T) {
		results := []*CheckResult{
			{Name: "project-structure", Title: "Checking project structure...", Passed: true},
			{
				Name: "api-key", Title: "Checking API key...",
				Items: []Item{{OK: false, Text: "ELEVENLABS_API_KEY is not set"}},
				Hints: []string{"Option 1: set it"},
			},
		}
		var buf bytes.Buffer
		require.NoError(t, NewReport(results).WriteText(&buf))
		out := buf.String()

		assert.Contains(t, out, "✗ ELEVENLABS_API_KEY is not set\n  Option 1: set it\n")
		assert.Contains(t, out, "✗ 1 test(s) failed (1/2 passed)")
		assert.Contains(t, out, "1. Get your API key")
		assert.Contains(t, out, "2. Set the environment variable")
		assert.Contains(t, out, "3. Install missing dependencies")
	})
}

func TestReport_WriteJSON(t *testing.T) {
	results := []*CheckResult{{Name: "dependencies", Passed: false, Summary: "zap not linked"}}
	var buf bytes.Buffer
	require.NoError(t, NewReport(results).WriteJSON(&buf))

	var got struct {
		Passed bool `json:"passed"`
		Tally  struct {
			Passed int `json:"passed"`
			Total  int `json:"total"`
		} `json:"tally"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.False(t, got.Passed)
	assert.Equal(t, 1, got.Tally.Total)
	assert.Equal(t, "dependencies", got.Results[0]["name"])
}

package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/elevenlabs-mcp/internal/elevenlabs"
	"github.com/spboyer/elevenlabs-mcp/internal/tools"
	"github.com/spboyer/elevenlabs-mcp/internal/validation"
)

func TestExamples(t *testing.T) {
	examples := Examples()
	require.Len(t, examples, 6)
	for _, ex := range examples {
		assert.NotEmpty(t, ex.ToolName)
		assert.NotEmpty(t, ex.Description)
		assert.NotNil(t, ex.Arguments)
	}

	// Callers get their own copy.
	examples[2].Arguments["text"] = "changed"
	assert.NotEqual(t, "changed", Examples()[2].Arguments["text"])
}

func TestExamples_ValidAgainstToolSchemas(t *testing.T) {
	v, err := validation.NewToolValidator(tools.Definitions())
	require.NoError(t, err)
	for _, ex := range Examples() {
		assert.Empty(t, v.Validate(ex.ToolName, ex.Arguments), "example %q", ex.Description)
	}
}

func TestExamples_CoverEveryTool(t *testing.T) {
	seen := map[string]bool{}
	for _, ex := range Examples() {
		seen[ex.ToolName] = true
	}
	for _, d := range tools.Definitions() {
		assert.True(t, seen[d.Name], "no example for %s", d.Name)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "ElevenLabs MCP Server - Example Usage\n"))
	assert.Contains(t, out, "Available Tools (6 examples):")
	assert.Contains(t, out, "\n1. elevenlabs_list_voices\n   List all available voices\n")
	assert.Contains(t, out, "\n6. elevenlabs_stream_text_to_speech\n")
	assert.Equal(t, 12, strings.Count(out, strings.Repeat("=", 60)+"\n"))
	assert.Contains(t, out, "Arguments:\n{}\n")
	assert.Contains(t, out, "{\n  \"voice_id\": \"JBFqnCBsd6RMkjVDRZzb\"\n}")
	assert.Contains(t, out, "    \"stability\": 0.8")
	assert.Contains(t, out, "  George: JBFqnCBsd6RMkjVDRZzb\n")
	assert.Contains(t, out, "  Rachel: 21m00Tcm4TlvDq8ikWAM\n")
	assert.Contains(t, out, "  Domi:   AZnzlk1XvdvUeBnXmlld\n")
	assert.Contains(t, out, "  - mp3_44100_128 (default)\n")
}

func TestFeaturedFormatsAreSupported(t *testing.T) {
	for _, f := range FeaturedFormats {
		name, _, _ := strings.Cut(f, " ")
		assert.True(t, elevenlabs.IsOutputFormat(name), name)
	}
}

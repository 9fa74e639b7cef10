// Package catalog holds the static example tool calls printed by
// `elevenlabs-mcp examples`.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spboyer/elevenlabs-mcp/internal/tools"
)

// ToolCallExample is one example invocation of an MCP tool.
type ToolCallExample struct {
	ToolName    string         `json:"name"`
	Description string         `json:"description"`
	Arguments   map[string]any `json:"arguments"`
}

// Voice is a well-known premade voice.
type Voice struct {
	Name string
	ID   string
}

// Examples returns the example calls in presentation order. Each call
// returns a fresh copy.
func Examples() []ToolCallExample {
	return []ToolCallExample{
		{
			ToolName:    tools.ToolListVoices,
			Description: "List all available voices",
			Arguments:   map[string]any{},
		},
		{
			ToolName:    tools.ToolGetModels,
			Description: "Get all available TTS models",
			Arguments:   map[string]any{},
		},
		{
			ToolName:    tools.ToolTextToSpeech,
			Description: "Basic text-to-speech conversion",
			Arguments: map[string]any{
				"text": "Hello! This is a test of the ElevenLabs text-to-speech functionality through the MCP server.",
			},
		},
		{
			ToolName:    tools.ToolTextToSpeech,
			Description: "Text-to-speech with custom voice and settings",
			Arguments: map[string]any{
				"text":          "This example uses custom voice settings for a more personalized output.",
				"voice_id":      "21m00Tcm4TlvDq8ikWAM",
				"output_format": "mp3_44100_192",
				"voice_settings": map[string]any{
					"stability":         0.8,
					"similarity_boost":  0.7,
					"style":             0.2,
					"use_speaker_boost": true,
				},
			},
		},
		{
			ToolName:    tools.ToolGetVoiceInfo,
			Description: "Get detailed information about George voice",
			Arguments: map[string]any{
				"voice_id": "JBFqnCBsd6RMkjVDRZzb",
			},
		},
		{
			ToolName:    tools.ToolStreamTextToSpeech,
			Description: "Streaming text-to-speech for longer content",
			Arguments: map[string]any{
				"text":        "This is a longer piece of text that demonstrates the streaming capabilities of the ElevenLabs API. Streaming is particularly useful for real-time applications or when working with longer content that needs to be processed efficiently.",
				"output_file": "./audio_output/streaming_example.mp3",
			},
		},
	}
}

// PopularVoices lists commonly used premade voices.
var PopularVoices = []Voice{
	{Name: "george", ID: "JBFqnCBsd6RMkjVDRZzb"},
	{Name: "rachel", ID: "21m00Tcm4TlvDq8ikWAM"},
	{Name: "clyde", ID: "2EiwWnXFnvU5JabPnv8n"},
	{Name: "domi", ID: "AZnzlk1XvdvUeBnXmlld"},
}

// FeaturedFormats are the output formats called out in the printed guide.
var FeaturedFormats = []string{
	"mp3_44100_128 (default)",
	"mp3_44100_192 (high quality)",
	"wav_44100",
	"pcm_44100",
}

const rule = "============================================================"

// Print writes the example guide to w.
func Print(w io.Writer) error {
	examples := Examples()
	var b strings.Builder

	b.WriteString("ElevenLabs MCP Server - Example Usage\n")
	b.WriteString(strings.Repeat("=", 36) + "\n")
	b.WriteString("\nThis command shows example tool calls for the ElevenLabs MCP server.\n")
	b.WriteString("To actually use these tools, you need to:\n")
	b.WriteString("1. Start the MCP server: elevenlabs-mcp serve\n")
	b.WriteString("2. Connect an MCP client to the server\n")
	b.WriteString("3. Call the tools through the MCP protocol\n")

	fmt.Fprintf(&b, "\nAvailable Tools (%d examples):\n", len(examples))
	for i, ex := range examples {
		fmt.Fprintf(&b, "\n%d. %s\n   %s\n", i+1, ex.ToolName, ex.Description)
	}

	b.WriteString("\nDetailed Examples:\n")
	for _, ex := range examples {
		args, err := json.MarshalIndent(ex.Arguments, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding arguments for %s: %w", ex.ToolName, err)
		}
		fmt.Fprintf(&b, "\n%s\nTool: %s\nDescription: %s\nArguments:\n%s\n%s\n",
			rule, ex.ToolName, ex.Description, args, rule)
	}

	b.WriteString("\nEnvironment Setup:\n")
	b.WriteString("export ELEVENLABS_API_KEY='your_api_key_here'\n")

	b.WriteString("\nCommon Voice IDs:\n")
	title := cases.Title(language.English)
	width := 0
	for _, v := range PopularVoices {
		width = max(width, runewidth.StringWidth(v.Name)+1)
	}
	for _, v := range PopularVoices {
		fmt.Fprintf(&b, "  %s %s\n", runewidth.FillRight(title.String(v.Name)+":", width), v.ID)
	}

	b.WriteString("\nSupported Output Formats:\n")
	for _, f := range FeaturedFormats {
		fmt.Fprintf(&b, "  - %s\n", f)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

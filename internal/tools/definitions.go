package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/spboyer/elevenlabs-mcp/internal/elevenlabs"
)

// Tool names exposed over MCP.
const (
	ToolListVoices         = "elevenlabs_list_voices"
	ToolGetModels          = "elevenlabs_get_models"
	ToolTextToSpeech       = "elevenlabs_text_to_speech"
	ToolGetVoiceInfo       = "elevenlabs_get_voice_info"
	ToolStreamTextToSpeech = "elevenlabs_stream_text_to_speech"
)

// Definitions returns the MCP tool definitions in presentation order.
func Definitions() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(ToolListVoices,
			mcp.WithDescription("List all voices available to the ElevenLabs account"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		mcp.NewTool(ToolGetModels,
			mcp.WithDescription("List the available ElevenLabs text-to-speech models"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		speechTool(ToolTextToSpeech,
			"Convert text to speech and save the audio to a file"),
		mcp.NewTool(ToolGetVoiceInfo,
			mcp.WithDescription("Get detailed information about a specific voice"),
			mcp.WithString("voice_id",
				mcp.Required(),
				mcp.MinLength(1),
				mcp.Description("ID of the voice to look up"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		speechTool(ToolStreamTextToSpeech,
			"Convert text to speech using the streaming endpoint, writing audio as it arrives"),
	}
}

func speechTool(name, description string) mcp.Tool {
	unit := map[string]any{"type": "number", "minimum": 0, "maximum": 1}
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("text",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Text to convert to speech"),
		),
		mcp.WithString("voice_id",
			mcp.Description("Voice ID to use (defaults to the configured voice)"),
		),
		mcp.WithString("model_id",
			mcp.Description("Model ID to use (defaults to the configured model)"),
		),
		mcp.WithString("output_format",
			mcp.Description("Audio output format"),
			mcp.Enum(elevenlabs.OutputFormats...),
		),
		mcp.WithString("output_file",
			mcp.Description("Path of the audio file to write (defaults to a generated name in the output directory)"),
		),
		mcp.WithObject("voice_settings",
			mcp.Description("Optional voice settings overriding the defaults"),
			mcp.Properties(map[string]any{
				"stability":         unit,
				"similarity_boost":  unit,
				"style":             unit,
				"use_speaker_boost": map[string]any{"type": "boolean"},
			}),
		),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

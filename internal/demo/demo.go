// Package demo exercises the tool handlers directly against the live API
// and prints a short report of each step.
package demo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/spboyer/elevenlabs-mcp/internal/spinner"
	"github.com/spboyer/elevenlabs-mcp/internal/tools"
)

// SampleText is synthesized by the third demo step.
const SampleText = "Hello! This is a test of the ElevenLabs MCP server."

// Handlers are the tool handlers the demo calls.
type Handlers interface {
	GetModels(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)
	ListVoices(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)
	TextToSpeech(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)
}

var _ Handlers = (*tools.Toolset)(nil)

// Runner runs the demo.
type Runner struct {
	Handlers Handlers
	// HasAPIKey gates the whole run.
	HasAPIKey bool
	// OutputDir receives demo_sample.mp3.
	OutputDir string
	// Out receives the report; Progress receives the spinner.
	Out      io.Writer
	Progress io.Writer
	Logger   *zap.Logger
}

// Run executes the three demo steps. A failing step is reported and the run
// continues. Run returns an error only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	if r.Progress == nil {
		r.Progress = io.Discard
	}

	r.printf("ElevenLabs MCP Server - Functionality Demo\n")
	r.printf("==========================================\n")

	if !r.HasAPIKey {
		r.printf("❌ ELEVENLABS_API_KEY is not set\n")
		r.printf("Please set your API key: export ELEVENLABS_API_KEY='your_key'\n")
		return nil
	}
	if r.Handlers == nil {
		r.printf("❌ Server tools are not available\n")
		return nil
	}
	r.printf("✅ Server tools loaded successfully\n\n")

	steps := []func(context.Context){r.models, r.voices, r.speech}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		step(ctx)
		r.printf("\n")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.printf("🎉 Demo completed!\n")
	r.printf("The server is working correctly and ready to use via MCP protocol.\n")
	return nil
}

func (r *Runner) models(ctx context.Context) {
	r.printf("🔹 Demo 1: Listing available models...\n")
	var payload tools.ModelListPayload
	if err := r.call(ctx, r.Handlers.GetModels, nil, "Fetching models...", &payload); err != nil {
		r.printf("❌ Error listing models: %v\n", err)
		return
	}
	r.printf("Found %d models\n", payload.ModelCount)
	for i, m := range payload.Models[:min(3, len(payload.Models))] {
		r.printf("  %d. %s - %s\n", i+1, m.Name, m.Description)
	}
}

func (r *Runner) voices(ctx context.Context) {
	r.printf("🔹 Demo 2: Listing available voices...\n")
	var payload tools.VoiceListPayload
	if err := r.call(ctx, r.Handlers.ListVoices, nil, "Fetching voices...", &payload); err != nil {
		r.printf("❌ Error listing voices: %v\n", err)
		return
	}
	r.printf("Found %d voices\n", payload.VoiceCount)
	for i, v := range payload.Voices[:min(5, len(payload.Voices))] {
		r.printf("  %d. %s (%s...) - %s\n", i+1, v.Name, v.VoiceID[:min(8, len(v.VoiceID))], v.Category)
	}
}

func (r *Runner) speech(ctx context.Context) {
	r.printf("🔹 Demo 3: Generating a short text-to-speech sample...\n")
	args := map[string]any{
		"text":        SampleText,
		"output_file": filepath.Join(r.outputDir(), "demo_sample.mp3"),
	}

	res, err := r.invoke(ctx, r.Handlers.TextToSpeech, args, "Generating audio...")
	if err != nil {
		r.printf("❌ Error generating speech: %v\n", err)
		return
	}
	text, _ := tools.ResultText(res)
	var payload tools.SpeechPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		r.printf("❌ Error generating speech: malformed response: %v\n", err)
		return
	}
	if !payload.Success {
		r.printf("❌ Generation failed: %s\n", text)
		return
	}
	r.printf("✅ Audio generated successfully!\n")
	r.printf("   File: %s\n", payload.OutputFile)
	r.printf("   Size: %d bytes\n", payload.FileSizeBytes)
	r.printf("   Voice: %s\n", payload.VoiceID)
	r.printf("   Model: %s\n", payload.ModelID)
}

type handlerFunc func(context.Context, map[string]any) (*mcp.CallToolResult, error)

// call invokes h and decodes its JSON text into v. isError results are
// returned as errors.
func (r *Runner) call(ctx context.Context, h handlerFunc, args map[string]any, progress string, v any) error {
	res, err := r.invoke(ctx, h, args, progress)
	if err != nil {
		return err
	}
	text, ok := tools.ResultText(res)
	if !ok {
		return errors.New("empty response")
	}
	if res.IsError {
		return errors.New(text)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}

func (r *Runner) invoke(ctx context.Context, h handlerFunc, args map[string]any, progress string) (*mcp.CallToolResult, error) {
	if args == nil {
		args = map[string]any{}
	}
	stop := spinner.Start(r.Progress, progress)
	res, err := h(ctx, args)
	stop()
	if err != nil {
		r.Logger.Debug("demo step failed", zap.Error(err))
		return nil, err
	}
	if res == nil {
		return nil, errors.New("empty response")
	}
	return res, nil
}

func (r *Runner) outputDir() string {
	if r.OutputDir == "" {
		return "audio_output"
	}
	return r.OutputDir
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...) //nolint:errcheck
}

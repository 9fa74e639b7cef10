// Package tools implements the ElevenLabs MCP tool handlers. Each handler
// takes decoded call arguments and returns an MCP result whose single text
// block carries a JSON payload.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/spboyer/elevenlabs-mcp/internal/elevenlabs"
)

// ErrToolNotRegistered is returned when a tool name has no handler.
var ErrToolNotRegistered = errors.New("tool not registered")

// Handler runs one tool call.
type Handler func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)

// Settings holds the defaults applied to speech requests.
type Settings struct {
	DefaultVoiceID string
	DefaultModelID string
	OutputFormat   string
	OutputDir      string
}

// Toolset binds the tool definitions to their handlers.
type Toolset struct {
	api      SpeechAPI
	settings Settings
	logger   *zap.Logger
	defs     []mcp.Tool
	handlers map[string]Handler
}

// New builds the tool set. It fails with ErrToolNotRegistered if a
// definition has no handler.
func New(api SpeechAPI, settings Settings, logger *zap.Logger) (*Toolset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Toolset{
		api:      api,
		settings: settings,
		logger:   logger,
		defs:     Definitions(),
	}
	t.handlers = map[string]Handler{
		ToolListVoices:         t.ListVoices,
		ToolGetModels:          t.GetModels,
		ToolTextToSpeech:       t.TextToSpeech,
		ToolGetVoiceInfo:       t.GetVoiceInfo,
		ToolStreamTextToSpeech: t.StreamTextToSpeech,
	}
	for _, d := range t.defs {
		if _, ok := t.handlers[d.Name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrToolNotRegistered, d.Name)
		}
	}
	return t, nil
}

// Tools returns the tool definitions.
func (t *Toolset) Tools() []mcp.Tool {
	return t.defs
}

// Handler returns the handler for name.
func (t *Toolset) Handler(name string) (Handler, error) {
	h, ok := t.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotRegistered, name)
	}
	return h, nil
}

// Call dispatches a tool call by name.
func (t *Toolset) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	h, err := t.Handler(name)
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return h(ctx, args)
}

// VoiceSummary is one voice in a VoiceListPayload.
type VoiceSummary struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Labels      map[string]string `json:"labels"`
	PreviewURL  string            `json:"preview_url"`
}

// VoiceListPayload is the JSON text of elevenlabs_list_voices.
type VoiceListPayload struct {
	VoiceCount int            `json:"voice_count"`
	Voices     []VoiceSummary `json:"voices"`
}

// ModelSummary is one model in a ModelListPayload.
type ModelSummary struct {
	ModelID           string                `json:"model_id"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	CanDoTextToSpeech bool                  `json:"can_do_text_to_speech"`
	Languages         []elevenlabs.Language `json:"languages"`
}

// ModelListPayload is the JSON text of elevenlabs_get_models.
type ModelListPayload struct {
	ModelCount int            `json:"model_count"`
	Models     []ModelSummary `json:"models"`
}

// SpeechPayload is the JSON text of the two speech tools.
type SpeechPayload struct {
	Success       bool   `json:"success"`
	OutputFile    string `json:"output_file,omitempty"`
	FileSizeBytes int64  `json:"file_size_bytes,omitempty"`
	VoiceID       string `json:"voice_id"`
	ModelID       string `json:"model_id"`
	OutputFormat  string `json:"output_format"`
	TextLength    int    `json:"text_length"`
	ChunksWritten int    `json:"chunks_written,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ListVoices handles elevenlabs_list_voices.
func (t *Toolset) ListVoices(ctx context.Context, _ map[string]any) (*mcp.CallToolResult, error) {
	voices, err := t.api.ListVoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}

	payload := VoiceListPayload{VoiceCount: len(voices), Voices: make([]VoiceSummary, 0, len(voices))}
	for _, v := range voices {
		payload.Voices = append(payload.Voices, VoiceSummary{
			VoiceID:     v.VoiceID,
			Name:        v.Name,
			Category:    v.Category,
			Description: v.Description,
			Labels:      v.Labels,
			PreviewURL:  v.PreviewURL,
		})
	}
	return jsonResult(payload, false)
}

// GetModels handles elevenlabs_get_models.
func (t *Toolset) GetModels(ctx context.Context, _ map[string]any) (*mcp.CallToolResult, error) {
	models, err := t.api.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}

	payload := ModelListPayload{ModelCount: len(models), Models: make([]ModelSummary, 0, len(models))}
	for _, m := range models {
		payload.Models = append(payload.Models, ModelSummary{
			ModelID:           m.ModelID,
			Name:              m.Name,
			Description:       m.Description,
			CanDoTextToSpeech: m.CanDoTextToSpeech,
			Languages:         m.Languages,
		})
	}
	return jsonResult(payload, false)
}

// GetVoiceInfo handles elevenlabs_get_voice_info.
func (t *Toolset) GetVoiceInfo(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var a struct {
		VoiceID string `mapstructure:"voice_id"`
	}
	if err := mapstructure.Decode(args, &a); err != nil {
		return nil, fmt.Errorf("decoding arguments: %w", err)
	}
	if a.VoiceID == "" {
		return mcp.NewToolResultError("voice_id is required"), nil
	}

	voice, err := t.api.GetVoice(ctx, a.VoiceID)
	if err != nil {
		return nil, fmt.Errorf("getting voice %s: %w", a.VoiceID, err)
	}
	return jsonResult(voice, false)
}

// TextToSpeech handles elevenlabs_text_to_speech.
func (t *Toolset) TextToSpeech(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	req, outFile, err := t.speechRequest(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	payload := newSpeechPayload(req)

	audio, err := t.api.TextToSpeech(ctx, req)
	if err != nil {
		return t.speechFailure(payload, err)
	}
	if err := writeAudio(outFile, audio); err != nil {
		return t.speechFailure(payload, err)
	}

	payload.Success = true
	payload.OutputFile = outFile
	payload.FileSizeBytes = int64(len(audio))
	t.logger.Info("audio generated",
		zap.String("output_file", outFile),
		zap.Int64("bytes", payload.FileSizeBytes),
		zap.String("voice_id", req.VoiceID))
	return jsonResult(payload, false)
}

// StreamTextToSpeech handles elevenlabs_stream_text_to_speech.
func (t *Toolset) StreamTextToSpeech(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	req, outFile, err := t.speechRequest(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	payload := newSpeechPayload(req)

	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return t.speechFailure(payload, fmt.Errorf("creating output directory: %w", err))
	}
	f, err := os.Create(outFile)
	if err != nil {
		return t.speechFailure(payload, fmt.Errorf("creating output file: %w", err))
	}

	res, err := t.api.StreamTextToSpeech(ctx, req, f)
	closeErr := f.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("closing output file: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(outFile)
		return t.speechFailure(payload, err)
	}

	payload.Success = true
	payload.OutputFile = outFile
	payload.FileSizeBytes = res.Bytes
	payload.ChunksWritten = res.Chunks
	t.logger.Info("audio streamed",
		zap.String("output_file", outFile),
		zap.Int64("bytes", res.Bytes),
		zap.Int("chunks", res.Chunks))
	return jsonResult(payload, false)
}

type speechArgs struct {
	Text          string         `mapstructure:"text"`
	VoiceID       string         `mapstructure:"voice_id"`
	ModelID       string         `mapstructure:"model_id"`
	OutputFormat  string         `mapstructure:"output_format"`
	OutputFile    string         `mapstructure:"output_file"`
	VoiceSettings map[string]any `mapstructure:"voice_settings"`
}

// speechRequest applies the configured defaults to the call arguments and
// picks the output path.
func (t *Toolset) speechRequest(args map[string]any) (elevenlabs.SpeechRequest, string, error) {
	var a speechArgs
	if err := mapstructure.Decode(args, &a); err != nil {
		return elevenlabs.SpeechRequest{}, "", fmt.Errorf("invalid arguments: %w", err)
	}
	if a.Text == "" {
		return elevenlabs.SpeechRequest{}, "", errors.New("text is required")
	}

	settings := elevenlabs.DefaultVoiceSettings()
	if a.VoiceSettings != nil {
		if err := mapstructure.Decode(a.VoiceSettings, &settings); err != nil {
			return elevenlabs.SpeechRequest{}, "", fmt.Errorf("invalid voice_settings: %w", err)
		}
	}

	req := elevenlabs.SpeechRequest{
		VoiceID:       firstNonEmpty(a.VoiceID, t.settings.DefaultVoiceID),
		ModelID:       firstNonEmpty(a.ModelID, t.settings.DefaultModelID),
		OutputFormat:  firstNonEmpty(a.OutputFormat, t.settings.OutputFormat),
		Text:          a.Text,
		VoiceSettings: &settings,
	}

	outFile := a.OutputFile
	if outFile == "" {
		outFile = filepath.Join(t.settings.OutputDir, "tts_"+uuid.NewString()+elevenlabs.FileExtension(req.OutputFormat))
	}
	return req, outFile, nil
}

func (t *Toolset) speechFailure(payload SpeechPayload, err error) (*mcp.CallToolResult, error) {
	t.logger.Warn("speech generation failed", zap.String("voice_id", payload.VoiceID), zap.Error(err))
	payload.Success = false
	payload.Error = err.Error()
	return jsonResult(payload, true)
}

func newSpeechPayload(req elevenlabs.SpeechRequest) SpeechPayload {
	return SpeechPayload{
		VoiceID:      req.VoiceID,
		ModelID:      req.ModelID,
		OutputFormat: req.OutputFormat,
		TextLength:   utf8.RuneCountInString(req.Text),
	}
}

func writeAudio(path string, audio []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("writing audio file: %w", err)
	}
	return nil
}

func jsonResult(v any, isError bool) (*mcp.CallToolResult, error) {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	res := mcp.NewToolResultText(string(text))
	res.IsError = isError
	return res, nil
}

// ResultText returns the text of the first text block in res.
func ResultText(res *mcp.CallToolResult) (string, bool) {
	if res == nil {
		return "", false
	}
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			return tc.Text, true
		case *mcp.TextContent:
			return tc.Text, true
		}
	}
	return "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spboyer/elevenlabs-mcp/internal/elevenlabs"
)

func newToolset(t *testing.T, api SpeechAPI) (*Toolset, string) {
	t.Helper()
	outDir := t.TempDir()
	ts, err := New(api, Settings{
		DefaultVoiceID: "default-voice",
		DefaultModelID: "default-model",
		OutputFormat:   "mp3_44100_128",
		OutputDir:      outDir,
	}, nil)
	require.NoError(t, err)
	return ts, outDir
}

func decodeResult[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	text, ok := ResultText(res)
	require.True(t, ok, "result has no text content")
	var v T
	require.NoError(t, json.Unmarshal([]byte(text), &v))
	return v
}

func TestNew_RegistersEveryDefinition(t *testing.T) {
	ts, _ := newToolset(t, nil)

	names := make([]string, 0, len(ts.Tools()))
	for _, tool := range ts.Tools() {
		names = append(names, tool.Name)
		_, err := ts.Handler(tool.Name)
		require.NoError(t, err, tool.Name)
	}
	assert.Equal(t, []string{
		ToolListVoices,
		ToolGetModels,
		ToolTextToSpeech,
		ToolGetVoiceInfo,
		ToolStreamTextToSpeech,
	}, names)
}

func TestHandler_Unknown(t *testing.T) {
	ts, _ := newToolset(t, nil)

	_, err := ts.Handler("elevenlabs_sing")
	require.ErrorIs(t, err, ErrToolNotRegistered)

	_, err = ts.Call(context.Background(), "elevenlabs_sing", nil)
	require.ErrorIs(t, err, ErrToolNotRegistered)
}

func TestDefinitions_SpeechSchema(t *testing.T) {
	data, err := json.Marshal(Definitions()[2])
	require.NoError(t, err)

	var decoded struct {
		Name        string `json:"name"`
		InputSchema struct {
			Required   []string                  `json:"required"`
			Properties map[string]map[string]any `json:"properties"`
		} `json:"inputSchema"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ToolTextToSpeech, decoded.Name)
	assert.Equal(t, []string{"text"}, decoded.InputSchema.Required)
	assert.Contains(t, decoded.InputSchema.Properties, "voice_settings")
	assert.Contains(t, decoded.InputSchema.Properties["output_format"]["enum"], "mp3_44100_128")
}

func TestListVoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().ListVoices(gomock.Any()).Return([]elevenlabs.Voice{
		{VoiceID: "JBFqnCBsd6RMkjVDRZzb", Name: "George", Category: "premade", Labels: map[string]string{"accent": "british"}},
		{VoiceID: "21m00Tcm4TlvDq8ikWAM", Name: "Rachel", Category: "premade"},
	}, nil)

	ts, _ := newToolset(t, api)
	res, err := ts.Call(context.Background(), ToolListVoices, nil)
	require.NoError(t, err)
	assert.False(t, res.IsError)

	payload := decodeResult[VoiceListPayload](t, res)
	assert.Equal(t, 2, payload.VoiceCount)
	assert.Equal(t, "George", payload.Voices[0].Name)
	assert.Equal(t, "british", payload.Voices[0].Labels["accent"])
}

func TestListVoices_APIError(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().ListVoices(gomock.Any()).Return(nil, elevenlabs.ErrMissingAPIKey)

	ts, _ := newToolset(t, api)
	_, err := ts.ListVoices(context.Background(), nil)
	require.ErrorIs(t, err, elevenlabs.ErrMissingAPIKey)
}

func TestGetModels(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().ListModels(gomock.Any()).Return([]elevenlabs.Model{
		{ModelID: "eleven_multilingual_v2", Name: "Multilingual v2", Description: "Our most lifelike model", CanDoTextToSpeech: true},
	}, nil)

	ts, _ := newToolset(t, api)
	res, err := ts.GetModels(context.Background(), map[string]any{})
	require.NoError(t, err)

	payload := decodeResult[ModelListPayload](t, res)
	assert.Equal(t, 1, payload.ModelCount)
	assert.Equal(t, "Our most lifelike model", payload.Models[0].Description)
	assert.True(t, payload.Models[0].CanDoTextToSpeech)
}

func TestGetVoiceInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().GetVoice(gomock.Any(), "JBFqnCBsd6RMkjVDRZzb").Return(&elevenlabs.Voice{
		VoiceID: "JBFqnCBsd6RMkjVDRZzb",
		Name:    "George",
	}, nil)

	ts, _ := newToolset(t, api)
	res, err := ts.GetVoiceInfo(context.Background(), map[string]any{"voice_id": "JBFqnCBsd6RMkjVDRZzb"})
	require.NoError(t, err)

	voice := decodeResult[elevenlabs.Voice](t, res)
	assert.Equal(t, "George", voice.Name)
}

func TestGetVoiceInfo_MissingID(t *testing.T) {
	ts, _ := newToolset(t, nil)

	res, err := ts.GetVoiceInfo(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestTextToSpeech_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().TextToSpeech(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req elevenlabs.SpeechRequest) ([]byte, error) {
			assert.Equal(t, "default-voice", req.VoiceID)
			assert.Equal(t, "default-model", req.ModelID)
			assert.Equal(t, "mp3_44100_128", req.OutputFormat)
			require.NotNil(t, req.VoiceSettings)
			assert.Equal(t, elevenlabs.DefaultVoiceSettings(), *req.VoiceSettings)
			return []byte("audio-bytes"), nil
		})

	ts, outDir := newToolset(t, api)
	res, err := ts.TextToSpeech(context.Background(), map[string]any{"text": "Héllo"})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	payload := decodeResult[SpeechPayload](t, res)
	assert.True(t, payload.Success)
	assert.Equal(t, int64(len("audio-bytes")), payload.FileSizeBytes)
	assert.Equal(t, 5, payload.TextLength)
	assert.Equal(t, outDir, filepath.Dir(payload.OutputFile))
	assert.True(t, strings.HasPrefix(filepath.Base(payload.OutputFile), "tts_"))
	assert.Equal(t, ".mp3", filepath.Ext(payload.OutputFile))

	data, err := os.ReadFile(payload.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))
}

func TestTextToSpeech_CustomArguments(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().TextToSpeech(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req elevenlabs.SpeechRequest) ([]byte, error) {
			assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", req.VoiceID)
			assert.Equal(t, "mp3_44100_192", req.OutputFormat)
			assert.InDelta(t, 0.8, req.VoiceSettings.Stability, 1e-9)
			assert.InDelta(t, 0.75, req.VoiceSettings.SimilarityBoost, 1e-9, "unset fields keep defaults")
			return []byte("x"), nil
		})

	ts, _ := newToolset(t, api)
	out := filepath.Join(t.TempDir(), "nested", "custom.mp3")
	res, err := ts.TextToSpeech(context.Background(), map[string]any{
		"text":           "custom",
		"voice_id":       "21m00Tcm4TlvDq8ikWAM",
		"output_format":  "mp3_44100_192",
		"output_file":    out,
		"voice_settings": map[string]any{"stability": 0.8},
	})
	require.NoError(t, err)

	payload := decodeResult[SpeechPayload](t, res)
	assert.Equal(t, out, payload.OutputFile)
	assert.FileExists(t, out)
}

func TestTextToSpeech_APIFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().TextToSpeech(gomock.Any(), gomock.Any()).Return(nil, errors.New("quota exceeded"))

	ts, _ := newToolset(t, api)
	res, err := ts.TextToSpeech(context.Background(), map[string]any{"text": "hi"})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	payload := decodeResult[SpeechPayload](t, res)
	assert.False(t, payload.Success)
	assert.Contains(t, payload.Error, "quota exceeded")
}

func TestTextToSpeech_InvalidArguments(t *testing.T) {
	ts, _ := newToolset(t, nil)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing text", map[string]any{}},
		{"text wrong type", map[string]any{"text": 42}},
		{"settings wrong type", map[string]any{"text": "hi", "voice_settings": map[string]any{"stability": "high"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ts.TextToSpeech(context.Background(), tt.args)
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}

func TestStreamTextToSpeech(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().StreamTextToSpeech(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ elevenlabs.SpeechRequest, w io.Writer) (*elevenlabs.StreamResult, error) {
			_, _ = io.WriteString(w, "chunk1")
			_, _ = io.WriteString(w, "chunk2")
			return &elevenlabs.StreamResult{Bytes: 12, Chunks: 2}, nil
		})

	ts, _ := newToolset(t, api)
	out := filepath.Join(t.TempDir(), "stream.mp3")
	res, err := ts.StreamTextToSpeech(context.Background(), map[string]any{"text": "long text", "output_file": out})
	require.NoError(t, err)

	payload := decodeResult[SpeechPayload](t, res)
	assert.True(t, payload.Success)
	assert.Equal(t, 2, payload.ChunksWritten)
	assert.Equal(t, int64(12), payload.FileSizeBytes)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "chunk1chunk2", string(data))
}

func TestStreamTextToSpeech_FailureRemovesFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockSpeechAPI(ctrl)
	api.EXPECT().StreamTextToSpeech(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &elevenlabs.APIResponseError{Endpoint: "/stream", StatusCode: 401, Body: "unauthorized"})

	ts, _ := newToolset(t, api)
	out := filepath.Join(t.TempDir(), "stream.mp3")
	res, err := ts.StreamTextToSpeech(context.Background(), map[string]any{"text": "hi", "output_file": out})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.NoFileExists(t, out)
}

func TestResultText(t *testing.T) {
	_, ok := ResultText(nil)
	assert.False(t, ok)

	text, ok := ResultText(mcp.NewToolResultText("hello"))
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	text, ok = ResultText(&mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Type: "text", Text: "ptr"}}})
	assert.True(t, ok)
	assert.Equal(t, "ptr", text)
}

package tools

import (
	"context"
	"io"

	"github.com/spboyer/elevenlabs-mcp/internal/elevenlabs"
)

//go:generate go tool mockgen -source=api.go -destination=mock_speech_api_test.go -package=tools

// SpeechAPI is the subset of the ElevenLabs client the tools depend on.
type SpeechAPI interface {
	ListVoices(ctx context.Context) ([]elevenlabs.Voice, error)
	GetVoice(ctx context.Context, voiceID string) (*elevenlabs.Voice, error)
	ListModels(ctx context.Context) ([]elevenlabs.Model, error)
	TextToSpeech(ctx context.Context, req elevenlabs.SpeechRequest) ([]byte, error)
	StreamTextToSpeech(ctx context.Context, req elevenlabs.SpeechRequest, w io.Writer) (*elevenlabs.StreamResult, error)
}

var _ SpeechAPI = (*elevenlabs.Client)(nil)

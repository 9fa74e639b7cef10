package elevenlabs

// Voice is one entry of GET /v1/voices.
type Voice struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category,omitempty"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	PreviewURL  string            `json:"preview_url,omitempty"`
	Settings    *VoiceSettings    `json:"settings,omitempty"`
}

type voicesResponse struct {
	Voices []Voice `json:"voices"`
}

// Language is a language supported by a Model.
type Language struct {
	LanguageID string `json:"language_id"`
	Name       string `json:"name"`
}

// Model is one entry of GET /v1/models.
type Model struct {
	ModelID           string     `json:"model_id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	CanDoTextToSpeech bool       `json:"can_do_text_to_speech"`
	Languages         []Language `json:"languages,omitempty"`
}

// VoiceSettings tunes a single synthesis request.
type VoiceSettings struct {
	Stability       float64 `json:"stability" mapstructure:"stability"`
	SimilarityBoost float64 `json:"similarity_boost" mapstructure:"similarity_boost"`
	Style           float64 `json:"style" mapstructure:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost" mapstructure:"use_speaker_boost"`
}

// DefaultVoiceSettings returns the settings used when a caller passes none.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0.0,
		UseSpeakerBoost: true,
	}
}

// SpeechRequest describes one text-to-speech call. VoiceID and OutputFormat
// travel in the URL; the rest is the JSON body.
type SpeechRequest struct {
	VoiceID       string         `json:"-"`
	OutputFormat  string         `json:"-"`
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id,omitempty"`
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
}

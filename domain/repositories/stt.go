package repositories

import "context"

// SpeechToText abstracts speech recognition services.
type SpeechToText interface {
	// TranscribeAudio converts encoded audio data to text. An empty or
	// whitespace-only transcript is an error, never a valid result.
	TranscribeAudio(ctx context.Context, audioData []byte, config AudioConfig) (string, error)
}

// AudioConfig represents audio configuration for speech recognition.
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
}

// Package config loads server configuration from the environment. Upstream
// credentials are required: the process refuses to start without them.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Language hint passed to speech recognition.
	SpeechLanguage string `envconfig:"SPEECH_LANGUAGE" default:"en-US"`

	// Per-stage timeouts, in seconds.
	TranscriptionTimeoutSeconds int `envconfig:"TRANSCRIPTION_TIMEOUT_SECONDS" default:"15"`
	GenerationTimeoutSeconds    int `envconfig:"GENERATION_TIMEOUT_SECONDS" default:"20"`
	SynthesisTimeoutSeconds     int `envconfig:"SYNTHESIS_TIMEOUT_SECONDS" default:"30"`

	// Gemini scene generation. GOOGLE_APPLICATION_CREDENTIALS additionally
	// has to point at a service account for Cloud Speech; that is checked by
	// the speech client itself at construction.
	GeminiAPIKey      string  `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiModel       string  `envconfig:"GEMINI_MODEL"`
	GeminiTemperature float32 `envconfig:"GEMINI_TEMPERATURE"`
	GeminiMaxTokens   int     `envconfig:"GEMINI_MAX_TOKENS"`

	// ElevenLabs speech synthesis.
	ElevenLabsAPIKey       string `envconfig:"ELEVEN_LABS_API_KEY" required:"true"`
	ElevenLabsVoiceID      string `envconfig:"ELEVEN_LABS_VOICE_ID"`
	ElevenLabsModelID      string `envconfig:"ELEVEN_LABS_MODEL_ID"`
	ElevenLabsOutputFormat string `envconfig:"ELEVEN_LABS_OUTPUT_FORMAT"`
}

// Load reads an optional .env file, then the environment. Missing required
// values fail loading.
func Load() (*Config, error) {
	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// envconfig's required tag accepts set-but-empty values; an empty secret
	// is still unusable.
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.ElevenLabsAPIKey == "" {
		return nil, fmt.Errorf("ELEVEN_LABS_API_KEY is required")
	}

	return &cfg, nil
}

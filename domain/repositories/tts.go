package repositories

import "context"

// TextToSpeech abstracts speech synthesis services.
type TextToSpeech interface {
	// SynthesizeSpeech converts non-empty text into encoded audio bytes.
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

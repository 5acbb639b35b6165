package tts

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voxquest/server/domain/repositories"
)

// MockTextToSpeech is a scriptable stand-in for speech synthesis.
type MockTextToSpeech struct {
	logger *zap.Logger

	// Err, when set, fails every call.
	Err error

	// Calls counts SynthesizeSpeech invocations.
	Calls int
}

var _ repositories.TextToSpeech = (*MockTextToSpeech)(nil)

// NewMockTextToSpeech creates a new mock text-to-speech service.
func NewMockTextToSpeech(logger *zap.Logger) *MockTextToSpeech {
	return &MockTextToSpeech{logger: logger}
}

// SynthesizeSpeech implements repositories.TextToSpeech. The mock audio is
// sized from the input text so tests can assert something flowed through.
func (t *MockTextToSpeech) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	t.Calls++

	if t.Err != nil {
		return nil, t.Err
	}
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	t.logger.Debug("mock synthesis", zap.Int("textLength", len(text)))

	mockAudio := make([]byte, len(text)*100)
	for i := range mockAudio {
		mockAudio[i] = byte(i % 256)
	}
	return mockAudio, nil
}

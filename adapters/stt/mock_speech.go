package stt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voxquest/server/domain/repositories"
)

// MockSpeechToText is a scriptable stand-in for speech recognition.
type MockSpeechToText struct {
	logger *zap.Logger

	// Transcript is returned on success. Err, when set, is returned instead.
	Transcript string
	Err        error

	// Calls counts TranscribeAudio invocations.
	Calls int
}

var _ repositories.SpeechToText = (*MockSpeechToText)(nil)

// NewMockSpeechToText creates a new mock speech-to-text service.
func NewMockSpeechToText(logger *zap.Logger) *MockSpeechToText {
	return &MockSpeechToText{
		logger:     logger,
		Transcript: "go to the forest",
	}
}

// TranscribeAudio implements repositories.SpeechToText.
func (s *MockSpeechToText) TranscribeAudio(ctx context.Context, audioData []byte, config repositories.AudioConfig) (string, error) {
	s.Calls++

	s.logger.Debug("mock transcription",
		zap.Int("audioSize", len(audioData)),
		zap.String("encoding", config.Encoding))

	if s.Err != nil {
		return "", s.Err
	}
	if len(audioData) == 0 {
		return "", fmt.Errorf("no audio data received")
	}
	return s.Transcript, nil
}

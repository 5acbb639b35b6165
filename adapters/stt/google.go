package stt

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/voxquest/server/domain/repositories"
)

const defaultTimeout = 15 * time.Second

// GoogleSpeechToText implements SpeechToText for Google Cloud. The underlying
// client is constructed once and shared across requests.
type GoogleSpeechToText struct {
	client  *speech.Client
	timeout time.Duration
	logger  *zap.Logger
}

var _ repositories.SpeechToText = (*GoogleSpeechToText)(nil)

// NewGoogleSpeechToText creates the adapter using application-default
// credentials. Timeout bounds each transcription call; zero means the default.
func NewGoogleSpeechToText(ctx context.Context, timeout time.Duration, logger *zap.Logger) (*GoogleSpeechToText, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &GoogleSpeechToText{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the underlying gRPC connection.
func (g *GoogleSpeechToText) Close() error {
	return g.client.Close()
}

// TranscribeAudio converts audio data to text using Google Cloud
// Speech-to-Text. The audio bytes are sent as-is; no intermediate file is
// written. An empty transcript is an error.
func (g *GoogleSpeechToText) TranscribeAudio(ctx context.Context, audioData []byte, config repositories.AudioConfig) (string, error) {
	if len(audioData) == 0 {
		return "", fmt.Errorf("no audio data received")
	}

	encoding, err := getAudioEncoding(config.Encoding)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: int32(config.SampleRate),
			LanguageCode:    config.Language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	}

	resp, err := g.client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to recognize audio: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript)
		}
	}

	text := strings.TrimSpace(transcript.String())
	if text == "" {
		return "", fmt.Errorf("no speech detected in audio")
	}

	g.logger.Debug("transcription completed",
		zap.Int("audioSize", len(audioData)),
		zap.Int("transcriptLength", len(text)))

	return text, nil
}

// getAudioEncoding converts string encoding to Google Speech API enum.
func getAudioEncoding(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch strings.ToUpper(encoding) {
	case "", "WAV", "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW, nil
	case "AMR":
		return speechpb.RecognitionConfig_AMR, nil
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "WEBM_OPUS", "WEBM":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}

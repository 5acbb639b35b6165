package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/voxquest/server/domain/entities"
	"github.com/voxquest/server/domain/repositories"
	"github.com/voxquest/server/internal/game"
)

// VoiceActionService orchestrates one player turn: resolve the action text
// (typed or transcribed), generate or look up the next scene, and synthesize
// narration. Every upstream failure is absorbed into a degraded but playable
// response; only invalid requests surface as errors.
type VoiceActionService struct {
	speechToText repositories.SpeechToText
	textToSpeech repositories.TextToSpeech
	scenes       *SceneService
	fallback     *game.FallbackTable
	language     string
	logger       *zap.Logger
}

// NewVoiceActionService creates a new voice action service.
func NewVoiceActionService(
	stt repositories.SpeechToText,
	tts repositories.TextToSpeech,
	scenes *SceneService,
	fallback *game.FallbackTable,
	language string,
	logger *zap.Logger,
) *VoiceActionService {
	if language == "" {
		language = "en-US"
	}
	return &VoiceActionService{
		speechToText: stt,
		textToSpeech: tts,
		scenes:       scenes,
		fallback:     fallback,
		language:     language,
		logger:       logger,
	}
}

// Process runs the pipeline for one request. It returns either a result, a
// *entities.RequestError for client mistakes, or a *entities.InternalError
// that still carries a fallback scene. No other error crosses this boundary.
func (s *VoiceActionService) Process(ctx context.Context, req entities.VoiceAction) (result *entities.VoiceActionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in voice action pipeline", zap.Any("panic", r))
			result = nil
			err = &entities.InternalError{
				Err:      fmt.Errorf("panic: %v", r),
				Fallback: s.fallbackResult(req.GameState),
			}
		}
	}()

	if strings.TrimSpace(req.GameState) == "" {
		return nil, entities.NewRequestError("missing_game_state", "gameState is required")
	}

	// A new game never consults the generator: the opening scene is canonical.
	if req.GameState == entities.NewGameState {
		scene := s.fallback.Opening()
		return &entities.VoiceActionResult{
			Scene:     scene,
			AudioData: s.synthesize(ctx, scene.TTSText),
		}, nil
	}

	playerAction, transcription, inputFallback, err := s.resolveAction(ctx, req)
	if err != nil {
		return nil, err
	}

	scene, fallbackUsed := s.nextScene(ctx, playerAction, req.GameState)

	return &entities.VoiceActionResult{
		Scene:         scene,
		AudioData:     s.synthesize(ctx, scene.TTSText),
		Transcription: transcription,
		FallbackUsed:  fallbackUsed || inputFallback,
	}, nil
}

// resolveAction turns the request's input channels into one action text.
// Audio wins when it transcribes; a typed action backs it up; neither is a
// client error.
func (s *VoiceActionService) resolveAction(ctx context.Context, req entities.VoiceAction) (action, transcription string, inputFallback bool, err error) {
	typedAction := strings.TrimSpace(req.Action)

	if len(req.AudioData) > 0 {
		if len(req.AudioData) > entities.MaxAudioBytes {
			return "", "", false, entities.NewRequestError("audio_too_large",
				fmt.Sprintf("decoded audio is %d bytes, limit is %d", len(req.AudioData), entities.MaxAudioBytes))
		}

		text, terr := s.speechToText.TranscribeAudio(ctx, req.AudioData, repositories.AudioConfig{
			Encoding: req.AudioFormat,
			Language: s.language,
		})
		if terr == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), strings.TrimSpace(text), false, nil
		}

		if terr == nil {
			terr = fmt.Errorf("empty transcription result")
		}
		s.logger.Warn("transcription failed",
			zap.String("gameState", req.GameState),
			zap.String("stage", string(entities.StageTranscription)),
			zap.Error(terr))

		if typedAction != "" {
			// Input fallback: the typed action stands in for the audio.
			return typedAction, "", true, nil
		}
		return "", "", false, entities.NewRequestError("audio_transcription_failed", terr.Error())
	}

	if typedAction != "" {
		return typedAction, "", false, nil
	}

	return "", "", false, entities.NewRequestError("missing_action", "either action or audioData is required")
}

// nextScene generates the next scene, substituting the fallback table entry
// for the current state on any generation failure.
func (s *VoiceActionService) nextScene(ctx context.Context, playerAction, gameState string) (entities.Scene, bool) {
	scene, err := s.scenes.Generate(ctx, playerAction, gameState)
	if err == nil {
		return scene, false
	}

	s.logger.Warn("generation failed, using fallback table",
		zap.String("gameState", gameState),
		zap.String("stage", string(entities.StageGeneration)),
		zap.Error(err))

	return s.fallback.Lookup(gameState), true
}

// synthesize is best-effort: the game stays playable through text alone, so a
// synthesis failure only costs the audio.
func (s *VoiceActionService) synthesize(ctx context.Context, text string) []byte {
	audio, err := s.textToSpeech.SynthesizeSpeech(ctx, text)
	if err != nil {
		s.logger.Warn("synthesis failed, returning scene without audio",
			zap.String("stage", string(entities.StageSynthesis)),
			zap.Error(err))
		return nil
	}
	return audio
}

// fallbackResult builds the catch-all response for unexpected failures.
func (s *VoiceActionService) fallbackResult(gameState string) *entities.VoiceActionResult {
	scene := s.fallback.Lookup(gameState)
	return &entities.VoiceActionResult{
		Scene:        scene,
		FallbackUsed: true,
	}
}

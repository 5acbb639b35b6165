package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/voxquest/server/domain/entities"
	"github.com/voxquest/server/domain/repositories"
)

// systemPrompt pins the model to the scene schema and keeps the tone of a
// family-friendly fantasy adventure. The model's output is still treated as
// untrusted text and validated before use.
const systemPrompt = `You are the narrator of a voice-controlled emoji text adventure set in a
light fantasy world of forests, villages, caves and friendly peril. The player
speaks an action; you answer with the next scene.

Respond with ONLY a JSON object, no prose and no markdown, matching exactly:
{
  "emojiScene": "6 to 12 emoji that picture the scene",
  "description": "one or two short sentences describing what happens",
  "options": ["2 to 4 short action labels the player can say next"],
  "newGameState": "a short snake_case label for the new situation",
  "ttsText": "one or two spoken sentences, ending with a question or choice"
}

Keep it playful and safe for all ages. Never kill the player outright, never
break character, and never mention that you are a model or that this is JSON.`

// SceneService turns a player action and the current game state into the next
// scene by prompting a language model and strictly validating its reply.
type SceneService struct {
	llm    repositories.LargeLanguageModel
	logger *zap.Logger
}

// NewSceneService creates a new scene service.
func NewSceneService(llm repositories.LargeLanguageModel, logger *zap.Logger) *SceneService {
	return &SceneService{llm: llm, logger: logger}
}

// Generate produces the next scene for (playerAction, gameState). Any upstream
// error, unparseable reply, or missing required field is a generation-stage
// failure; the caller decides whether to substitute a fallback scene. Scenes
// outside the recommended option/emoji ranges are accepted and only logged.
func (s *SceneService) Generate(ctx context.Context, playerAction string, gameState string) (entities.Scene, error) {
	userPrompt := fmt.Sprintf("Current game state: %s\nPlayer action: %s", gameState, playerAction)

	raw, err := s.llm.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return entities.Scene{}, entities.NewUpstreamError(entities.StageGeneration, err)
	}

	scene, err := parseScene(raw)
	if err != nil {
		s.logger.Warn("model reply rejected",
			zap.String("gameState", gameState),
			zap.Error(err))
		return entities.Scene{}, entities.NewUpstreamError(entities.StageGeneration, err)
	}

	if violations := scene.SoftViolations(); len(violations) > 0 {
		s.logger.Warn("scene outside recommended ranges",
			zap.String("gameState", gameState),
			zap.Strings("violations", violations))
	}

	s.logger.Info("scene generated",
		zap.String("gameState", gameState),
		zap.String("newGameState", scene.NewGameState))

	return scene, nil
}

// parseScene decodes and hard-validates a raw model reply.
func parseScene(raw string) (entities.Scene, error) {
	var scene entities.Scene
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &scene); err != nil {
		return entities.Scene{}, fmt.Errorf("reply is not valid JSON: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return entities.Scene{}, fmt.Errorf("reply violates scene schema: %w", err)
	}
	return scene, nil
}

// stripCodeFence removes a surrounding markdown code fence, which some models
// add even when asked for bare JSON.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

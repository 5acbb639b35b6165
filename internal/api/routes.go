package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voxquest/server/domain/entities"
	"github.com/voxquest/server/usecase"
)

// InitRoutes initializes all API routes.
func InitRoutes(e *echo.Echo, voiceActions *usecase.VoiceActionService, logger *zap.Logger) {
	e.Use(requestID)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "voxquest-server",
		})
	})

	e.POST("/api/voice-action", func(c echo.Context) error {
		return handleVoiceAction(c, voiceActions, logger)
	})
}

// requestID tags every request with an id for log correlation.
func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, id)
		c.Set("request_id", id)
		return next(c)
	}
}

// handleVoiceAction runs one player turn through the pipeline.
func handleVoiceAction(c echo.Context, voiceActions *usecase.VoiceActionService, logger *zap.Logger) error {
	log := logger.With(zap.String("requestID", requestIDOf(c)))

	var req VoiceActionRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind voice action request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Details: "request body is not valid JSON",
		})
	}

	audioData, err := decodeAudioData(req.AudioData)
	if err != nil {
		log.Warn("failed to decode audio payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_audio_data",
			Details: "audioData is not valid base64",
		})
	}

	result, err := voiceActions.Process(c.Request().Context(), entities.VoiceAction{
		Action:      req.Action,
		AudioData:   audioData,
		AudioFormat: req.AudioFormat,
		GameState:   req.GameState,
	})
	if err != nil {
		return writeProcessError(c, log, err)
	}

	log.Info("voice action processed",
		zap.String("gameState", req.GameState),
		zap.String("newGameState", result.Scene.NewGameState),
		zap.Bool("fallbackUsed", result.FallbackUsed))

	return c.JSON(http.StatusOK, toResponse(result))
}

// writeProcessError maps pipeline errors onto the HTTP contract: request
// errors are 400s, everything else is a 500 that still tries to carry a
// playable fallback scene.
func writeProcessError(c echo.Context, log *zap.Logger, err error) error {
	var reqErr *entities.RequestError
	if errors.As(err, &reqErr) {
		log.Warn("voice action rejected", zap.String("reason", reqErr.Reason))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   reqErr.Reason,
			Details: reqErr.Details,
		})
	}

	var intErr *entities.InternalError
	if errors.As(err, &intErr) {
		log.Error("voice action failed unexpectedly", zap.Error(intErr))
		resp := ErrorResponse{Error: "internal_error", Details: "an unexpected error occurred"}
		if intErr.Fallback != nil {
			fallback := toResponse(intErr.Fallback)
			resp.Fallback = &fallback
		}
		return c.JSON(http.StatusInternalServerError, resp)
	}

	log.Error("voice action failed with unclassified error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal_error",
	})
}

// decodeAudioData decodes a base64 audio payload, tolerating the data-URL
// prefix browsers produce from FileReader.
func decodeAudioData(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}

	if strings.HasPrefix(encoded, "data:") {
		if idx := strings.Index(encoded, ","); idx >= 0 {
			encoded = encoded[idx+1:]
		}
	}

	return base64.StdEncoding.DecodeString(encoded)
}

func toResponse(result *entities.VoiceActionResult) VoiceActionResponse {
	resp := VoiceActionResponse{
		EmojiScene:    result.Scene.EmojiScene,
		Description:   result.Scene.Description,
		Options:       result.Scene.Options,
		NewGameState:  result.Scene.NewGameState,
		TTSText:       result.Scene.TTSText,
		Transcription: result.Transcription,
		FallbackUsed:  result.FallbackUsed,
	}
	if len(result.AudioData) > 0 {
		resp.AudioData = base64.StdEncoding.EncodeToString(result.AudioData)
	}
	return resp
}

func requestIDOf(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok {
		return id
	}
	return ""
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/voxquest/server/adapters/llm"
	"github.com/voxquest/server/adapters/stt"
	"github.com/voxquest/server/adapters/tts"
	"github.com/voxquest/server/internal/api"
	"github.com/voxquest/server/internal/config"
	"github.com/voxquest/server/internal/game"
	"github.com/voxquest/server/internal/websocket"
	"github.com/voxquest/server/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration; missing upstream credentials abort startup.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Initialize adapters
	geminiLLM, err := llm.NewGeminiLLM(ctx, llm.GeminiConfig{
		APIKey:          cfg.GeminiAPIKey,
		Model:           cfg.GeminiModel,
		Temperature:     cfg.GeminiTemperature,
		MaxOutputTokens: cfg.GeminiMaxTokens,
		TimeoutSeconds:  cfg.GenerationTimeoutSeconds,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize Gemini client", zap.Error(err))
	}

	speechToText, err := stt.NewGoogleSpeechToText(ctx,
		time.Duration(cfg.TranscriptionTimeoutSeconds)*time.Second, logger)
	if err != nil {
		logger.Fatal("failed to initialize speech-to-text client", zap.Error(err))
	}
	defer speechToText.Close()

	textToSpeech, err := tts.NewElevenLabsTTS(tts.ElevenLabsConfig{
		APIKey:       cfg.ElevenLabsAPIKey,
		VoiceID:      cfg.ElevenLabsVoiceID,
		ModelID:      cfg.ElevenLabsModelID,
		OutputFormat: cfg.ElevenLabsOutputFormat,
		Timeout:      time.Duration(cfg.SynthesisTimeoutSeconds) * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize text-to-speech client", zap.Error(err))
	}

	// Initialize usecase services
	sceneService := usecase.NewSceneService(geminiLLM, logger)
	voiceActions := usecase.NewVoiceActionService(
		speechToText,
		textToSpeech,
		sceneService,
		game.NewFallbackTable(),
		cfg.SpeechLanguage,
		logger,
	)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("16M"))

	// Initialize WebSocket hub for live play
	hub := websocket.NewHub(voiceActions, logger)
	go hub.Run()

	// Initialize API routes
	api.InitRoutes(e, voiceActions, logger)
	e.GET("/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(hub, c, logger)
	})

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

package api_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voxquest/server/adapters/llm"
	"github.com/voxquest/server/adapters/stt"
	"github.com/voxquest/server/adapters/tts"
	"github.com/voxquest/server/internal/api"
	"github.com/voxquest/server/internal/game"
	"github.com/voxquest/server/usecase"
)

const generatedSceneJSON = `{
	"emojiScene": "🌲🌲👤🏰🌧️🌲",
	"description": "A castle looms through the rain.",
	"options": ["Knock on the gate", "Circle the walls"],
	"newGameState": "castle_gate",
	"ttsText": "A castle looms through the rain. Knock, or circle the walls?"
}`

type server struct {
	echo *echo.Echo
	stt  *stt.MockSpeechToText
	tts  *tts.MockTextToSpeech
	llm  *llm.MockLLM
}

func newServer() *server {
	logger := zap.NewNop()
	s := &server{
		echo: echo.New(),
		stt:  stt.NewMockSpeechToText(logger),
		tts:  tts.NewMockTextToSpeech(logger),
		llm:  &llm.MockLLM{Response: generatedSceneJSON},
	}
	voiceActions := usecase.NewVoiceActionService(
		s.stt, s.tts,
		usecase.NewSceneService(s.llm, logger),
		game.NewFallbackTable(),
		"en-US", logger)
	api.InitRoutes(s.echo, voiceActions, logger)
	return s
}

func (s *server) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/voice-action", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	s := newServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestVoiceActionSuccess(t *testing.T) {
	s := newServer()
	rec := s.post(t, `{"action": "knock on the gate", "gameState": "forest_crossroads"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[api.VoiceActionResponse](t, rec)
	if resp.NewGameState != "castle_gate" {
		t.Errorf("Expected castle_gate, got %s", resp.NewGameState)
	}
	if resp.FallbackUsed {
		t.Error("Live generation must report fallbackUsed=false")
	}
	if resp.AudioData == "" {
		t.Error("Expected base64 audio in the response")
	}
	if _, err := base64.StdEncoding.DecodeString(resp.AudioData); err != nil {
		t.Errorf("audioData is not valid base64: %v", err)
	}
}

func TestVoiceActionNewGame(t *testing.T) {
	s := newServer()
	rec := s.post(t, `{"gameState": "new_game"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[api.VoiceActionResponse](t, rec)
	if resp.NewGameState != "home_full_health" {
		t.Errorf("Expected opening state home_full_health, got %s", resp.NewGameState)
	}
	if resp.FallbackUsed {
		t.Error("New game must report fallbackUsed=false")
	}
	if s.llm.Calls != 0 {
		t.Error("New game must not call the generator")
	}
}

func TestVoiceActionMissingGameState(t *testing.T) {
	s := newServer()
	rec := s.post(t, `{"action": "look around"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	resp := decodeBody[api.ErrorResponse](t, rec)
	if resp.Error != "missing_game_state" {
		t.Errorf("Expected missing_game_state, got %s", resp.Error)
	}
}

func TestVoiceActionGenerationFallback(t *testing.T) {
	s := newServer()
	s.llm.Err = errors.New("model unavailable")

	rec := s.post(t, `{"action": "go to the forest", "gameState": "home_full_health"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Degraded responses are still 200, got %d", rec.Code)
	}

	resp := decodeBody[api.VoiceActionResponse](t, rec)
	if !resp.FallbackUsed {
		t.Error("Expected fallbackUsed=true")
	}
	if resp.EmojiScene != "🌲🌲👤🐺👹🌲🌲" {
		t.Errorf("Expected the forest/wolf fallback scene, got %s", resp.EmojiScene)
	}
	if resp.NewGameState != "combat_wolf" {
		t.Errorf("Expected combat_wolf, got %s", resp.NewGameState)
	}
	if n := len(resp.Options); n < 2 || n > 4 {
		t.Errorf("Expected 2-4 options, got %d", n)
	}
}

func TestVoiceActionInternalErrorEmbedsFallback(t *testing.T) {
	s := newServer()
	s.llm.Panic = "scene generator blew up"

	rec := s.post(t, `{"action": "go to the forest", "gameState": "home_full_health"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[api.ErrorResponse](t, rec)
	if resp.Error != "internal_error" {
		t.Errorf("Expected internal_error, got %s", resp.Error)
	}
	if resp.Fallback == nil {
		t.Fatal("Expected a fallback scene embedded in the 500 body")
	}
	if !resp.Fallback.FallbackUsed {
		t.Error("Embedded fallback must report fallbackUsed=true")
	}
	if resp.Fallback.NewGameState != "combat_wolf" {
		t.Errorf("Expected combat_wolf fallback, got %s", resp.Fallback.NewGameState)
	}
}

func TestVoiceActionInvalidBase64(t *testing.T) {
	s := newServer()
	rec := s.post(t, `{"audioData": "!!!not-base64!!!", "gameState": "forest_crossroads"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	resp := decodeBody[api.ErrorResponse](t, rec)
	if resp.Error != "invalid_audio_data" {
		t.Errorf("Expected invalid_audio_data, got %s", resp.Error)
	}
	if s.stt.Calls != 0 {
		t.Error("Undecodable audio must not reach transcription")
	}
}

func TestVoiceActionDataURLPrefix(t *testing.T) {
	s := newServer()
	s.stt.Transcript = "open the door"

	audio := base64.StdEncoding.EncodeToString([]byte("fake audio bytes"))
	rec := s.post(t, `{"audioData": "data:audio/webm;base64,`+audio+`", "audioFormat": "WEBM_OPUS", "gameState": "forest_crossroads"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[api.VoiceActionResponse](t, rec)
	if resp.Transcription != "open the door" {
		t.Errorf("Expected transcription, got %q", resp.Transcription)
	}
}

func TestVoiceActionTranscriptionFailureWithoutAction(t *testing.T) {
	s := newServer()
	s.stt.Err = errors.New("speech service down")

	audio := base64.StdEncoding.EncodeToString([]byte("fake audio bytes"))
	rec := s.post(t, `{"audioData": "`+audio+`", "gameState": "forest_crossroads"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	resp := decodeBody[api.ErrorResponse](t, rec)
	if resp.Error != "audio_transcription_failed" {
		t.Errorf("Expected audio_transcription_failed, got %s", resp.Error)
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	s := newServer()
	rec := s.post(t, `{"gameState": "new_game"}`)

	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Error("Expected an X-Request-ID header on the response")
	}
}

package websocket

import (
	"encoding/base64"
	"testing"

	"github.com/voxquest/server/domain/entities"
)

func TestParseVoiceActionMessage(t *testing.T) {
	audio := base64.StdEncoding.EncodeToString([]byte("fake audio"))
	payload := `{"type": "voice_action", "action": "go north", "audioData": "` + audio + `", "audioFormat": "WEBM_OPUS", "gameState": "forest_crossroads"}`

	req, err := ParseVoiceActionMessage([]byte(payload))
	if err != nil {
		t.Fatalf("Expected frame to parse, got: %v", err)
	}
	if req.Action != "go north" {
		t.Errorf("Expected action 'go north', got %q", req.Action)
	}
	if string(req.AudioData) != "fake audio" {
		t.Errorf("Audio was not decoded, got %q", req.AudioData)
	}
	if req.GameState != "forest_crossroads" {
		t.Errorf("Expected forest_crossroads, got %q", req.GameState)
	}
}

func TestParseVoiceActionMessageDataURL(t *testing.T) {
	audio := base64.StdEncoding.EncodeToString([]byte("fake audio"))
	payload := `{"type": "voice_action", "audioData": "data:audio/webm;base64,` + audio + `", "gameState": "forest_crossroads"}`

	req, err := ParseVoiceActionMessage([]byte(payload))
	if err != nil {
		t.Fatalf("Expected data-URL audio to parse, got: %v", err)
	}
	if string(req.AudioData) != "fake audio" {
		t.Errorf("Audio was not decoded, got %q", req.AudioData)
	}
}

func TestParseVoiceActionMessageRejectsWrongType(t *testing.T) {
	if _, err := ParseVoiceActionMessage([]byte(`{"type": "ping"}`)); err == nil {
		t.Error("Expected error for wrong message type")
	}
}

func TestParseVoiceActionMessageRejectsBadJSON(t *testing.T) {
	if _, err := ParseVoiceActionMessage([]byte(`not json`)); err == nil {
		t.Error("Expected error for malformed frame")
	}
}

func TestParseVoiceActionMessageRejectsBadBase64(t *testing.T) {
	payload := `{"type": "voice_action", "audioData": "!!!", "gameState": "forest_crossroads"}`
	if _, err := ParseVoiceActionMessage([]byte(payload)); err == nil {
		t.Error("Expected error for undecodable audio")
	}
}

func TestNewSceneMessage(t *testing.T) {
	result := &entities.VoiceActionResult{
		Scene: entities.Scene{
			EmojiScene:   "🌲🌲👤🐺👹🌲🌲",
			Description:  "A wolf blocks the path.",
			Options:      []string{"Fight", "Run"},
			NewGameState: "combat_wolf",
			TTSText:      "A wolf blocks the path. Fight or run?",
		},
		AudioData:     []byte("fake audio"),
		Transcription: "go to the forest",
		FallbackUsed:  true,
	}

	msg := NewSceneMessage(result)
	if msg.Type != MessageTypeScene {
		t.Errorf("Expected scene type, got %s", msg.Type)
	}
	if !msg.FallbackUsed {
		t.Error("Expected fallbackUsed to carry over")
	}
	if msg.AudioData != base64.StdEncoding.EncodeToString([]byte("fake audio")) {
		t.Errorf("Audio was not base64 encoded: %s", msg.AudioData)
	}
	if msg.Transcription != "go to the forest" {
		t.Errorf("Expected transcription to carry over, got %q", msg.Transcription)
	}
}

func TestNewSceneMessageOmitsEmptyAudio(t *testing.T) {
	result := &entities.VoiceActionResult{
		Scene: entities.Scene{
			EmojiScene:   "🌫️🌲👤❓🌲🌫️",
			Description:  "Mist everywhere.",
			Options:      []string{"Press on", "Turn back"},
			NewGameState: "forest_crossroads",
			TTSText:      "Mist swallows the path.",
		},
	}

	msg := NewSceneMessage(result)
	if msg.AudioData != "" {
		t.Errorf("Expected empty audioData, got %q", msg.AudioData)
	}
}

package websocket

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voxquest/server/domain/entities"
)

// Message types exchanged over the live-play socket.
const (
	MessageTypeVoiceAction = "voice_action"
	MessageTypeScene       = "scene"
	MessageTypeError       = "error"
)

// VoiceActionMessage is the inbound frame: the same fields as the POST
// endpoint plus a type tag.
type VoiceActionMessage struct {
	Type        string `json:"type"`
	Action      string `json:"action,omitempty"`
	AudioData   string `json:"audioData,omitempty"`
	GameState   string `json:"gameState"`
	AudioFormat string `json:"audioFormat,omitempty"`
}

// SceneMessage is the outbound frame for a processed turn.
type SceneMessage struct {
	Type          string   `json:"type"`
	EmojiScene    string   `json:"emojiScene"`
	Description   string   `json:"description"`
	Options       []string `json:"options"`
	NewGameState  string   `json:"newGameState"`
	TTSText       string   `json:"ttsText"`
	AudioData     string   `json:"audioData,omitempty"`
	Transcription string   `json:"transcription,omitempty"`
	FallbackUsed  bool     `json:"fallbackUsed"`
}

// ErrorMessage is the outbound frame for a rejected or failed turn. Fallback
// carries a playable scene when one could be built.
type ErrorMessage struct {
	Type     string        `json:"type"`
	Error    string        `json:"error"`
	Details  string        `json:"details,omitempty"`
	Fallback *SceneMessage `json:"fallback,omitempty"`
}

// ParseVoiceActionMessage decodes an inbound frame into a domain request.
func ParseVoiceActionMessage(payload []byte) (entities.VoiceAction, error) {
	var msg VoiceActionMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return entities.VoiceAction{}, fmt.Errorf("frame is not valid JSON: %w", err)
	}
	if msg.Type != MessageTypeVoiceAction {
		return entities.VoiceAction{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}

	audio, err := decodeAudioData(msg.AudioData)
	if err != nil {
		return entities.VoiceAction{}, fmt.Errorf("audioData is not valid base64: %w", err)
	}

	return entities.VoiceAction{
		Action:      msg.Action,
		AudioData:   audio,
		AudioFormat: msg.AudioFormat,
		GameState:   msg.GameState,
	}, nil
}

// NewSceneMessage builds the outbound frame for a result.
func NewSceneMessage(result *entities.VoiceActionResult) SceneMessage {
	msg := SceneMessage{
		Type:          MessageTypeScene,
		EmojiScene:    result.Scene.EmojiScene,
		Description:   result.Scene.Description,
		Options:       result.Scene.Options,
		NewGameState:  result.Scene.NewGameState,
		TTSText:       result.Scene.TTSText,
		Transcription: result.Transcription,
		FallbackUsed:  result.FallbackUsed,
	}
	if len(result.AudioData) > 0 {
		msg.AudioData = base64.StdEncoding.EncodeToString(result.AudioData)
	}
	return msg
}

// decodeAudioData decodes a base64 audio payload, tolerating a data-URL prefix.
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

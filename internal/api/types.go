package api

// VoiceActionRequest is the POST /api/voice-action payload. AudioData is
// base64, optionally carrying a data-URL prefix; GameState is always required.
type VoiceActionRequest struct {
	Action      string `json:"action,omitempty"`
	AudioData   string `json:"audioData,omitempty"`
	GameState   string `json:"gameState"`
	AudioFormat string `json:"audioFormat,omitempty"`
}

// VoiceActionResponse is the success payload: the scene fields, optional
// synthesized audio, the transcription when audio was understood, and whether
// any live stage fell back to a static alternative.
type VoiceActionResponse struct {
	EmojiScene    string   `json:"emojiScene"`
	Description   string   `json:"description"`
	Options       []string `json:"options"`
	NewGameState  string   `json:"newGameState"`
	TTSText       string   `json:"ttsText"`
	AudioData     string   `json:"audioData,omitempty"`
	Transcription string   `json:"transcription,omitempty"`
	FallbackUsed  bool     `json:"fallbackUsed"`
}

// ErrorResponse is returned for 400s and 500s. A 500 still embeds a playable
// fallback scene when one could be built.
type ErrorResponse struct {
	Error    string               `json:"error"`
	Details  string               `json:"details,omitempty"`
	Fallback *VoiceActionResponse `json:"fallback,omitempty"`
}

package entities

// NewGameState is the distinguished label a client sends to start over. The
// orchestrator answers it with the canonical opening scene and never consults
// the generator.
const NewGameState = "new_game"

// MaxAudioBytes is the ceiling on decoded audio accepted for transcription.
const MaxAudioBytes = 10 << 20 // 10 MiB

// VoiceAction is one player turn: a typed action, a recorded one, or both.
// GameState is always required; it is the only game memory the server sees.
type VoiceAction struct {
	Action      string
	AudioData   []byte
	AudioFormat string
	GameState   string
}

// VoiceActionResult is the assembled answer to a VoiceAction. AudioData is the
// synthesized narration and may be absent; Transcription is set only when the
// action text came from audio. FallbackUsed is set when any live stage was
// replaced by a static alternative, whether the audio input fell back to the
// typed action or the generator fell back to the table.
type VoiceActionResult struct {
	Scene         Scene
	AudioData     []byte
	Transcription string
	FallbackUsed  bool
}

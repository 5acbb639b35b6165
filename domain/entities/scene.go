package entities

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Scene is one rendered game moment: a short emoji tableau, a description,
// the actions the player may take next, the label of the state the game moves
// into, and the line of narration meant for speech synthesis.
type Scene struct {
	EmojiScene   string   `json:"emojiScene"`
	Description  string   `json:"description"`
	Options      []string `json:"options"`
	NewGameState string   `json:"newGameState"`
	TTSText      string   `json:"ttsText"`
}

// Recommended ranges. Scenes outside them are still playable, so violations
// are reported for logging rather than rejected.
const (
	MinOptions    = 2
	MaxOptions    = 4
	MinEmojiRunes = 6
	MaxEmojiRunes = 12
)

// Validate enforces the hard invariant: every field present and non-empty.
// A Scene failing Validate must never be returned to a client.
func (s *Scene) Validate() error {
	if strings.TrimSpace(s.EmojiScene) == "" {
		return fmt.Errorf("scene is missing emojiScene")
	}
	if strings.TrimSpace(s.Description) == "" {
		return fmt.Errorf("scene is missing description")
	}
	if len(s.Options) == 0 {
		return fmt.Errorf("scene has no options")
	}
	for i, opt := range s.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("scene option %d is empty", i)
		}
	}
	if strings.TrimSpace(s.NewGameState) == "" {
		return fmt.Errorf("scene is missing newGameState")
	}
	if strings.TrimSpace(s.TTSText) == "" {
		return fmt.Errorf("scene is missing ttsText")
	}
	return nil
}

// SoftViolations reports recommended-range violations (option count, emoji
// length). These never fail a request.
func (s *Scene) SoftViolations() []string {
	var violations []string

	if n := len(s.Options); n < MinOptions || n > MaxOptions {
		violations = append(violations,
			fmt.Sprintf("option count %d outside %d-%d", n, MinOptions, MaxOptions))
	}

	if n := utf8.RuneCountInString(s.EmojiScene); n < MinEmojiRunes || n > MaxEmojiRunes {
		violations = append(violations,
			fmt.Sprintf("emoji scene length %d outside %d-%d", n, MinEmojiRunes, MaxEmojiRunes))
	}

	return violations
}

// Clone returns a copy with its own options slice, so callers can hand out
// table entries without exposing shared backing arrays. The value receiver
// lets it be called directly on map entries.
func (s Scene) Clone() Scene {
	clone := s
	clone.Options = make([]string, len(s.Options))
	copy(clone.Options, s.Options)
	return clone
}

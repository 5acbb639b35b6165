// Package game holds the static scene content the server can always serve:
// the canonical opening scene and the fallback table substituted whenever
// live generation fails. The table is built once and never mutated.
package game

import "github.com/voxquest/server/domain/entities"

// defaultState keys the table entry used when an incoming label is unmapped.
const defaultState = "default"

// FallbackTable maps game-state labels to precomputed scenes. Lookup is a
// total function: unmapped labels resolve to the default entry.
type FallbackTable struct {
	scenes  map[string]entities.Scene
	opening entities.Scene
}

// NewFallbackTable builds the process-wide table.
func NewFallbackTable() *FallbackTable {
	return &FallbackTable{
		scenes:  fallbackScenes,
		opening: openingScene,
	}
}

// Opening returns the canonical opening scene for a new game.
func (t *FallbackTable) Opening() entities.Scene {
	return t.opening.Clone()
}

// Lookup returns the fallback scene for the given game state, or the default
// entry when the state is unmapped. It never fails.
func (t *FallbackTable) Lookup(gameState string) entities.Scene {
	if scene, ok := t.scenes[gameState]; ok {
		return scene.Clone()
	}
	return t.scenes[defaultState].Clone()
}

var openingScene = entities.Scene{
	EmojiScene:   "🏠🌳🌞👤🗡️🌳🏠",
	Description:  "You wake at your cottage on the edge of the wildwood, sword by the door and the morning sun already high.",
	Options:      []string{"Go to the forest", "Visit the village", "Check your pack"},
	NewGameState: "home_full_health",
	TTSText:      "You wake at your cottage on the edge of the wildwood. The forest waits to the north, the village to the east. What will you do?",
}

var fallbackScenes = map[string]entities.Scene{
	"home_full_health": {
		EmojiScene:   "🌲🌲👤🐺👹🌲🌲",
		Description:  "Barely past the treeline, a grey wolf slinks out of the bracken and bares its teeth. Behind it, something larger moves in the shadows.",
		Options:      []string{"Draw your sword", "Back away slowly", "Climb a tree"},
		NewGameState: "combat_wolf",
		TTSText:      "A wolf blocks the forest path, hackles raised. Something bigger stirs behind it. Draw your sword, back away, or climb?",
	},
	"combat_wolf": {
		EmojiScene:   "⚔️🐺💨👤❤️🌲",
		Description:  "You drive the wolf off with a lucky swing, breathing hard. The path ahead forks at a moss-covered standing stone.",
		Options:      []string{"Take the left fork", "Take the right fork", "Rest a moment"},
		NewGameState: "forest_crossroads",
		TTSText:      "The wolf flees into the undergrowth. Ahead, the path forks at an old standing stone. Left, right, or rest?",
	},
	"forest_crossroads": {
		EmojiScene:   "🌲🪨🌿👤🦉🌲🌙",
		Description:  "Dusk settles over the crossroads. An owl watches you from the standing stone, and a faint light glimmers down the left path.",
		Options:      []string{"Follow the light", "Make camp here"},
		NewGameState: "forest_light",
		TTSText:      "Night falls at the crossroads. A strange light glimmers down the left path. Follow it, or make camp?",
	},
	"village_square": {
		EmojiScene:   "🏘️👥🍞💰👤⛲",
		Description:  "The village square bustles around the old fountain. A baker waves you over, and a hooded trader eyes your sword.",
		Options:      []string{"Talk to the baker", "Approach the trader", "Leave for the forest"},
		NewGameState: "village_square",
		TTSText:      "The village square hums with life. The baker waves, the trader watches. Who do you approach?",
	},
	defaultState: {
		EmojiScene:   "🌫️🌲👤❓🌲🌫️",
		Description:  "A strange mist rolls in and the world goes quiet. When it clears, you stand on an unfamiliar path through the trees.",
		Options:      []string{"Press on", "Turn back"},
		NewGameState: "forest_crossroads",
		TTSText:      "A mist swallows the path and leaves you somewhere new. Press on, or turn back?",
	},
}

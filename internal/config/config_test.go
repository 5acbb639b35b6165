package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("ELEVEN_LABS_API_KEY", "eleven-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SpeechLanguage != "en-US" {
		t.Errorf("Expected default language en-US, got %s", cfg.SpeechLanguage)
	}
	if cfg.GenerationTimeoutSeconds != 20 {
		t.Errorf("Expected default generation timeout 20, got %d", cfg.GenerationTimeoutSeconds)
	}
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ELEVEN_LABS_API_KEY", "eleven-key")

	if _, err := Load(); err == nil {
		t.Error("Expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadRequiresElevenLabsKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("ELEVEN_LABS_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error when ELEVEN_LABS_API_KEY is missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("Expected model override, got %s", cfg.GeminiModel)
	}
}

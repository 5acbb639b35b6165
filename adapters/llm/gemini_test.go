package llm

import "testing"

func TestValidateGeminiConfig(t *testing.T) {
	if err := ValidateGeminiConfig(GeminiConfig{}); err == nil {
		t.Error("Expected error when API key is not set")
	}
	if err := ValidateGeminiConfig(GeminiConfig{APIKey: "k", Temperature: 3}); err == nil {
		t.Error("Expected error for temperature out of range")
	}
	if err := ValidateGeminiConfig(GeminiConfig{APIKey: "k", TopP: 1.5}); err == nil {
		t.Error("Expected error for topP out of range")
	}
	if err := ValidateGeminiConfig(GeminiConfig{APIKey: "k", MaxOutputTokens: -1}); err == nil {
		t.Error("Expected error for negative maxOutputTokens")
	}
	if err := ValidateGeminiConfig(GeminiConfig{APIKey: "k", Temperature: 0.8, TopP: 0.95}); err != nil {
		t.Errorf("Expected valid config, got: %v", err)
	}
}

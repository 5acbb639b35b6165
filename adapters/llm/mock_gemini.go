package llm

import (
	"context"

	"github.com/voxquest/server/domain/repositories"
)

// MockLLM is a scriptable stand-in for a chat-completion provider.
type MockLLM struct {
	// Response is returned on success. Err, when set, is returned instead.
	// Panic, when set, makes Complete panic to exercise recovery paths.
	Response string
	Err      error
	Panic    string

	// Calls counts Complete invocations; LastUserPrompt records the most
	// recent prompt for assertions.
	Calls          int
	LastUserPrompt string
}

var _ repositories.LargeLanguageModel = (*MockLLM)(nil)

// Complete implements repositories.LargeLanguageModel.
func (m *MockLLM) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	m.Calls++
	m.LastUserPrompt = userPrompt

	if m.Panic != "" {
		panic(m.Panic)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

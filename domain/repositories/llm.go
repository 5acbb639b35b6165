package repositories

import "context"

// LargeLanguageModel abstracts any chat-completion provider.
type LargeLanguageModel interface {
	// Complete sends one system-instructed prompt and returns the model's
	// raw text reply. The reply is untrusted; callers validate it.
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

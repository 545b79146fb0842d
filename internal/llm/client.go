// Package llm provides the unified LLM client contract (§6) consumed by
// the Multi-Intent Extractor, Planner, Experts and Itinerary Verifier,
// plus concrete Gemini/Anthropic providers and an audit/rate-limit
// decorator chain.
package llm

import "context"

// ChatMessage is one turn of a chat-style request.
type ChatMessage struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

// ChatOptions tunes a single Chat/Complete/ExtractJSON call. Zero values
// fall back to the client's configured defaults.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Client is the contract every provider and decorator implements.
type Client interface {
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)
	Complete(ctx context.Context, prompt string, opts ChatOptions) (string, error)
	ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error)
}

package driven

import "context"

// ChatService produces answer text from a composed prompt.
//
// The answer pipeline makes exactly one single-turn, non-streaming call
// per question. Failures propagate to the caller; the core does not
// retry (retry policy is a caller concern).
type ChatService interface {
	// Chat conducts a single-turn conversation and returns the
	// generated text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoProfile indicates no user profile has been saved yet.
	// Commands that need calorie targets require a profile first.
	ErrNoProfile = errors.New("profile not set")

	// ErrChatUnavailable indicates the chat service is not configured.
	ErrChatUnavailable = errors.New("chat service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)

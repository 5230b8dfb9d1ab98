package core

import "errors"

var (
	// ErrMissingAPIKey means the configured provider has no credential.
	// Surfaced at startup, before any request is accepted.
	ErrMissingAPIKey = errors.New("missing provider api key")

	// ErrEmptyUtterance rejects blank input before any external call.
	ErrEmptyUtterance = errors.New("empty utterance")

	// ErrRetrieval wraps failures of the embedding/index side of a request.
	ErrRetrieval = errors.New("retrieval unavailable")

	// ErrGeneration wraps failures of the language-generation capability.
	ErrGeneration = errors.New("generation failed")
)

package ai

import "errors"

var (
	ErrMissingContent = errors.New("missing required fields")
	// ErrBadAIResponse means the provider returned prose the JSON parser
	// could not make sense of.
	ErrBadAIResponse = errors.New("failed to parse AI response")
)

package llm

import "errors"

var (
	// ErrServiceUnavailable indicates the provider is unreachable or failing (5xx).
	ErrServiceUnavailable = errors.New("text generation service unavailable")

	// ErrInvalidCredentials indicates a missing or rejected API key.
	ErrInvalidCredentials = errors.New("text generation credentials invalid")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("text generation request timed out")

	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("text generation returned no text")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("text generation retry attempts exhausted")

	// ErrDisabled indicates text generation is switched off in configuration.
	ErrDisabled = errors.New("text generation disabled")
)

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is the parent of every validation failure. Callers can
	// match the family with errors.Is(err, ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidAnswer   = fmt.Errorf("%w: invalid questionnaire answer", ErrInvalidInput)
	ErrInvalidQuantity = fmt.Errorf("%w: invalid quantity", ErrInvalidInput)
	ErrUnknownBeverage = fmt.Errorf("%w: unknown beverage", ErrInvalidInput)
	ErrUnknownAdditive = fmt.Errorf("%w: unknown additive", ErrInvalidInput)

	// ErrStorageUnavailable wraps any I/O failure of the record store.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNothingToSummarize means neither an assessment nor consumption data exists.
	ErrNothingToSummarize = errors.New("nothing to summarize")

	// ErrProfileRequired means the user has not set up a profile yet.
	ErrProfileRequired = errors.New("profile required")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

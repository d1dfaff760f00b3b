package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no API credential is available. Callers
// must not persist anything on this outcome.
var ErrNotConfigured = errors.New("AI API key not configured")

// Client generates text from a prompt. Implementations must return an empty
// string without a remote call for an empty or whitespace-only prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FailureMessage renders a generation error in the marker format surfaced to
// operators, e.g. "[Generation failed: AI API key not configured]".
func FailureMessage(err error) string {
	return fmt.Sprintf("[Generation failed: %s]", err)
}

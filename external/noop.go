package external

import (
	"context"
	"errors"

	"github.com/rxguard/rxguard-api/interfaces"
)

// ErrUnavailable is returned by the no-op client so callers take their
// deterministic fallback path.
var ErrUnavailable = errors.New("text generation not configured")

// Compile-time check
var _ interfaces.TextClient = NoopTextClient{}

// NoopTextClient stands in when no API key is configured. Every call
// fails fast with ErrUnavailable.
type NoopTextClient struct{}

func (NoopTextClient) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrUnavailable
}

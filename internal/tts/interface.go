package tts

import "context"

// Synthesizer is the interface the synthesis job depends on, so tests can
// substitute a mock for the HTTP client.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Ensure Client implements the interface
var _ Synthesizer = (*Client)(nil)

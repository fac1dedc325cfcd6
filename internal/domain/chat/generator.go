package chat

import "context"

// Generator produces the assistant reply for a new user message given the
// conversation history so far. A degraded placeholder reply is a successful
// result; only transport or provider failures surface as errors.
type Generator interface {
	Generate(ctx context.Context, history []Message, message string) (string, error)
}

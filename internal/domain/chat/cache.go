package chat

import (
	"context"
	"time"
)

// ReplyCache is a keyed, expiring store for generated replies. It is a
// performance optimization only: callers must tolerate every method failing.
type ReplyCache interface {
	// Get returns ErrCacheMiss when no entry exists for the key.
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key string, value string, ttl time.Duration) error
}

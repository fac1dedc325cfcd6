package chat

import "errors"

var (
	// ErrEmptyMessage rejects blank input before any side effect occurs.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrCacheMiss is returned by ReplyCache.Get when no entry exists.
	ErrCacheMiss = errors.New("reply cache miss")
)

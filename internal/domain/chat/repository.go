package chat

import "context"

// Repository is the durable store for conversations and their messages.
type Repository interface {
	// CreateConversation allocates a new conversation and returns its id.
	CreateConversation(ctx context.Context) (string, error)
	// AppendMessage stores one message; the store assigns the timestamp.
	AppendMessage(ctx context.Context, conversationID string, sender Sender, text string) error
	// ListMessages returns every message of the conversation in ascending
	// timestamp order. Unknown conversations yield an empty slice, not an error.
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
}

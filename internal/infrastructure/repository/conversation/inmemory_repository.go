package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/domain/chat"
)

// InMemoryRepository is a thread-safe repository useful for demos and tests.
// It mirrors the permissive store semantics: appending to or listing an
// unknown conversation id is allowed.
type InMemoryRepository struct {
	mu       sync.RWMutex
	messages map[string][]chat.Message
}

// NewInMemoryRepository creates an empty in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		messages: make(map[string][]chat.Message),
	}
}

func (r *InMemoryRepository) CreateConversation(ctx context.Context) (string, error) {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		r.messages[id] = nil
	}
	return id, nil
}

func (r *InMemoryRepository) AppendMessage(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[conversationID] = append(r.messages[conversationID], chat.Message{
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	})
	return nil
}

func (r *InMemoryRepository) ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.messages[conversationID]
	messages := make([]chat.Message, len(stored))
	copy(messages, stored)
	return messages, nil
}

var _ chat.Repository = (*InMemoryRepository)(nil)

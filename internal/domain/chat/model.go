package chat

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one entry in a conversation. The timestamp is assigned by the
// durable store at write time and is the ordering key within a conversation.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn is the outcome of one inbound user message.
type Turn struct {
	Reply          string
	ConversationID string
	CacheHit       bool
}

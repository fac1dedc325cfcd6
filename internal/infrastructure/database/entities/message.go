package entities

import "time"

// Message is one stored chat message. The timestamp is assigned at insert
// time and is the authoritative ordering key within a conversation.
type Message struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID string    `gorm:"type:uuid;index:idx_messages_conversation;not null"`
	Sender         string    `gorm:"type:varchar(10);not null"`
	Text           string    `gorm:"type:text;not null"`
	Timestamp      time.Time `gorm:"autoCreateTime;index:idx_messages_conversation"`
}

func (Message) TableName() string {
	return "messages"
}

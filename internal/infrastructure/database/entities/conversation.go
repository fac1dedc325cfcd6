package entities

import "time"

// Conversation is the persisted conversation row. The lifecycle is
// append-only: rows are created once and only ever accumulate messages.
type Conversation struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

func (Conversation) TableName() string {
	return "conversations"
}

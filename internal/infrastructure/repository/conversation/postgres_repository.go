package conversation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/domain/chat"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/database/entities"
)

// PostgresRepository persists conversations and messages via PostgreSQL using GORM.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository creates a repository backed by the provided DB.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateConversation(ctx context.Context) (string, error) {
	record := entities.Conversation{ID: uuid.NewString()}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *PostgresRepository) AppendMessage(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
	record := entities.Message{
		ConversationID: conversationID,
		Sender:         string(sender),
		Text:           text,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

// ListMessages returns the conversation's messages ordered by their
// store-assigned timestamp. The surrogate id breaks ties so the two rows of
// one turn cannot flip when they land in the same clock tick.
func (r *PostgresRepository) ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	var records []entities.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	messages := make([]chat.Message, len(records))
	for i, record := range records {
		messages[i] = chat.Message{
			Sender:    chat.Sender(record.Sender),
			Text:      record.Text,
			Timestamp: record.Timestamp,
		}
	}
	return messages, nil
}

var _ chat.Repository = (*PostgresRepository)(nil)

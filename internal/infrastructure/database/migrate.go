package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes for the chat tables.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(&entities.Conversation{}, &entities.Message{}); err != nil {
		return err
	}
	log.Debug().Msg("chat schema migrated")
	return nil
}

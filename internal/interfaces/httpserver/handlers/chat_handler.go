package handlers

import (
	"context"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/domain/chat"
)

// ChatHandler invokes domain logic for chat use cases.
type ChatHandler struct {
	service chat.Service
}

// NewChatHandler wires dependencies for chat routes.
func NewChatHandler(service chat.Service) *ChatHandler {
	return &ChatHandler{
		service: service,
	}
}

// SendMessage runs one chat turn through the message pipeline.
func (h *ChatHandler) SendMessage(ctx context.Context, message, sessionID string) (chat.Turn, error) {
	return h.service.SendMessage(ctx, message, sessionID)
}

// GetHistory returns the full ordered history of a conversation.
func (h *ChatHandler) GetHistory(ctx context.Context, sessionID string) ([]chat.Message, error) {
	return h.service.GetHistory(ctx, sessionID)
}

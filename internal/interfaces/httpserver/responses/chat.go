package responses

import (
	"time"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/domain/chat"
)

// SendMessageResponse is the success body of POST /v1/chat/message.
type SendMessageResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// MessageView is one history entry as served to clients.
type MessageView struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse is the body of GET /v1/chat/history/:sessionId.
type HistoryResponse struct {
	SessionID string        `json:"sessionId"`
	Messages  []MessageView `json:"messages"`
}

// NewHistoryResponse projects domain messages into the history payload.
func NewHistoryResponse(sessionID string, messages []chat.Message) HistoryResponse {
	views := make([]MessageView, len(messages))
	for i, m := range messages {
		views[i] = MessageView{
			Sender:    string(m.Sender),
			Text:      m.Text,
			Timestamp: m.Timestamp,
		}
	}
	return HistoryResponse{
		SessionID: sessionID,
		Messages:  views,
	}
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

package requests

// SendMessageRequest is the body of POST /v1/chat/message. SessionID is
// optional; when absent a new conversation is created for the caller.
type SendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

package llmprovider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/domain/chat"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/metrics"
)

const systemPrompt = `You are a helpful support agent for a small e-commerce store.
Answer clearly and concisely.`

// placeholderReply is returned as a successful result when the provider comes
// back without a usable choice. The pipeline persists and caches it like any
// other reply.
const placeholderReply = "Sorry, I couldn't generate a response."

// Config controls the chat-completions client.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Client produces replies via Groq's OpenAI-compatible chat completions API.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
}

// NewClient creates a chat-completions client for the configured endpoint.
func NewClient(cfg Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		api:       openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (c *Client) Generate(ctx context.Context, history []chat.Message, message string) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  buildMessages(history, message),
		MaxTokens: c.maxTokens,
	})
	metrics.ObserveGeneration(time.Since(start).Seconds(), err == nil)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return placeholderReply, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages maps the stored conversation onto completion roles: a fixed
// system prompt, then the history in order, then the new user message.
func buildMessages(history []chat.Message, message string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleAssistant
		if m.Sender == chat.SenderUser {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Text,
		})
	}
	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
}

var _ chat.Generator = (*Client)(nil)

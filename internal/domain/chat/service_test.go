package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/domain/chat"
)

// MockRepository is a func-field mock of chat.Repository.
type MockRepository struct {
	CreateConversationFunc func(ctx context.Context) (string, error)
	AppendMessageFunc      func(ctx context.Context, conversationID string, sender chat.Sender, text string) error
	ListMessagesFunc       func(ctx context.Context, conversationID string) ([]chat.Message, error)
}

func (m *MockRepository) CreateConversation(ctx context.Context) (string, error) {
	if m.CreateConversationFunc != nil {
		return m.CreateConversationFunc(ctx)
	}
	return "conv-1", nil
}

func (m *MockRepository) AppendMessage(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
	if m.AppendMessageFunc != nil {
		return m.AppendMessageFunc(ctx, conversationID, sender, text)
	}
	return nil
}

func (m *MockRepository) ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, conversationID)
	}
	return nil, nil
}

// MockReplyCache is a func-field mock of chat.ReplyCache.
type MockReplyCache struct {
	GetFunc        func(ctx context.Context, key string) (string, error)
	SetWithTTLFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func (m *MockReplyCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", chat.ErrCacheMiss
}

func (m *MockReplyCache) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetWithTTLFunc != nil {
		return m.SetWithTTLFunc(ctx, key, value, ttl)
	}
	return nil
}

// MockGenerator is a func-field mock of chat.Generator.
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, history []chat.Message, message string) (string, error)
}

func (m *MockGenerator) Generate(ctx context.Context, history []chat.Message, message string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, history, message)
	}
	return "reply", nil
}

func newService(repo chat.Repository, cache chat.ReplyCache, gen chat.Generator) chat.Service {
	return chat.NewService(repo, cache, gen, zerolog.Nop())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "conv:abc:msg:Hello", chat.CacheKey("abc", "Hello"))
	// The raw message is part of the key, whitespace included.
	assert.Equal(t, "conv:abc:msg:  Hello ", chat.CacheKey("abc", "  Hello "))
}

func TestSendMessageRejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{name: "empty", message: ""},
		{name: "spaces only", message: "   "},
		{name: "whitespace only", message: "\n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created, appended, cached int
			repo := &MockRepository{
				CreateConversationFunc: func(ctx context.Context) (string, error) {
					created++
					return "conv-1", nil
				},
				AppendMessageFunc: func(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
					appended++
					return nil
				},
			}
			cache := &MockReplyCache{
				SetWithTTLFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
					cached++
					return nil
				},
			}

			svc := newService(repo, cache, &MockGenerator{})
			_, err := svc.SendMessage(context.Background(), tt.message, "")

			require.ErrorIs(t, err, chat.ErrEmptyMessage)
			assert.Zero(t, created, "no conversation may be created")
			assert.Zero(t, appended, "no message may be stored")
			assert.Zero(t, cached, "no cache entry may be written")
		})
	}
}

func TestSendMessageCreatesConversationWhenSessionAbsent(t *testing.T) {
	var gotHistory []chat.Message
	var gotMessage string

	repo := &MockRepository{
		CreateConversationFunc: func(ctx context.Context) (string, error) {
			return "conv-new", nil
		},
		ListMessagesFunc: func(ctx context.Context, conversationID string) ([]chat.Message, error) {
			assert.Equal(t, "conv-new", conversationID)
			return nil, nil
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, history []chat.Message, message string) (string, error) {
			gotHistory = history
			gotMessage = message
			return "R1", nil
		},
	}

	svc := newService(repo, &MockReplyCache{}, gen)
	turn, err := svc.SendMessage(context.Background(), "Hello", "")

	require.NoError(t, err)
	assert.Equal(t, "conv-new", turn.ConversationID)
	assert.Equal(t, "R1", turn.Reply)
	assert.False(t, turn.CacheHit)
	assert.Empty(t, gotHistory)
	assert.Equal(t, "Hello", gotMessage)
}

func TestSendMessageUsesSuppliedSessionWithoutExistenceCheck(t *testing.T) {
	history := []chat.Message{
		{Sender: chat.SenderUser, Text: "Hi"},
		{Sender: chat.SenderAI, Text: "Hello!"},
	}

	var created int
	repo := &MockRepository{
		CreateConversationFunc: func(ctx context.Context) (string, error) {
			created++
			return "", errors.New("must not be called")
		},
		ListMessagesFunc: func(ctx context.Context, conversationID string) ([]chat.Message, error) {
			assert.Equal(t, "conv-77", conversationID)
			return history, nil
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, h []chat.Message, message string) (string, error) {
			assert.Equal(t, history, h)
			return "R2", nil
		},
	}

	svc := newService(repo, &MockReplyCache{}, gen)
	turn, err := svc.SendMessage(context.Background(), "More please", "conv-77")

	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, "conv-77", turn.ConversationID)
	assert.Equal(t, "R2", turn.Reply)
}

func TestSendMessageCacheHitShortCircuits(t *testing.T) {
	var generated, appended, refreshed int

	repo := &MockRepository{
		AppendMessageFunc: func(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
			appended++
			return nil
		},
	}
	cache := &MockReplyCache{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			assert.Equal(t, chat.CacheKey("conv-1", "Hello"), key)
			return "R1", nil
		},
		SetWithTTLFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
			refreshed++
			return nil
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, history []chat.Message, message string) (string, error) {
			generated++
			return "", nil
		},
	}

	svc := newService(repo, cache, gen)
	turn, err := svc.SendMessage(context.Background(), "Hello", "conv-1")

	require.NoError(t, err)
	assert.Equal(t, "R1 (from cache)", turn.Reply)
	assert.True(t, turn.CacheHit)
	assert.Zero(t, generated, "cache hits never invoke the generator")
	assert.Zero(t, appended, "cache hits never write history")
	assert.Zero(t, refreshed, "cache hits never refresh the TTL")
}

func TestSendMessageCacheErrorTreatedAsMiss(t *testing.T) {
	cache := &MockReplyCache{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			return "", errors.New("redis down")
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, history []chat.Message, message string) (string, error) {
			return "R1", nil
		},
	}

	svc := newService(&MockRepository{}, cache, gen)
	turn, err := svc.SendMessage(context.Background(), "Hello", "conv-1")

	require.NoError(t, err)
	assert.Equal(t, "R1", turn.Reply)
	assert.False(t, turn.CacheHit)
}

func TestSendMessageHistoryFetchFailureAbortsBeforeGeneration(t *testing.T) {
	var generated int
	repo := &MockRepository{
		ListMessagesFunc: func(ctx context.Context, conversationID string) ([]chat.Message, error) {
			return nil, errors.New("store unavailable")
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, history []chat.Message, message string) (string, error) {
			generated++
			return "", nil
		},
	}

	svc := newService(repo, &MockReplyCache{}, gen)
	turn, err := svc.SendMessage(context.Background(), "Hello", "conv-1")

	require.Error(t, err)
	assert.Zero(t, generated, "no generation cost after a failed history read")
	assert.Empty(t, turn.Reply)
	assert.Equal(t, "conv-1", turn.ConversationID)
}

func TestSendMessageGenerationFailurePersistsNothing(t *testing.T) {
	var appended, cached int
	repo := &MockRepository{
		AppendMessageFunc: func(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
			appended++
			return nil
		},
	}
	cache := &MockReplyCache{
		SetWithTTLFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
			cached++
			return nil
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, history []chat.Message, message string) (string, error) {
			return "", errors.New("provider timeout")
		},
	}

	svc := newService(repo, cache, gen)
	_, err := svc.SendMessage(context.Background(), "Hello", "conv-1")

	require.Error(t, err)
	assert.Zero(t, appended)
	assert.Zero(t, cached)
}

func TestSendMessagePersistsUserThenAIAndCaches(t *testing.T) {
	type appendCall struct {
		sender chat.Sender
		text   string
	}
	var appends []appendCall
	var cacheKey, cacheValue string
	var cacheTTL time.Duration

	repo := &MockRepository{
		AppendMessageFunc: func(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
			appends = append(appends, appendCall{sender: sender, text: text})
			return nil
		},
	}
	cache := &MockReplyCache{
		SetWithTTLFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
			cacheKey = key
			cacheValue = value
			cacheTTL = ttl
			return nil
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, history []chat.Message, message string) (string, error) {
			return "R1", nil
		},
	}

	svc := newService(repo, cache, gen)
	// Raw text with surrounding whitespace survives validation and is stored
	// and cached untrimmed.
	turn, err := svc.SendMessage(context.Background(), "  Hello ", "conv-1")

	require.NoError(t, err)
	assert.Equal(t, "R1", turn.Reply)
	require.Len(t, appends, 2)
	assert.Equal(t, appendCall{sender: chat.SenderUser, text: "  Hello "}, appends[0])
	assert.Equal(t, appendCall{sender: chat.SenderAI, text: "R1"}, appends[1])
	assert.Equal(t, chat.CacheKey("conv-1", "  Hello "), cacheKey)
	assert.Equal(t, "R1", cacheValue)
	assert.Equal(t, 10*time.Minute, cacheTTL)
}

func TestSendMessageFirstAppendFailureSkipsSecondButReturnsReply(t *testing.T) {
	var appends []chat.Sender
	var cached int

	repo := &MockRepository{
		AppendMessageFunc: func(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
			appends = append(appends, sender)
			return errors.New("store unavailable")
		},
	}
	cache := &MockReplyCache{
		SetWithTTLFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
			cached++
			return nil
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, history []chat.Message, message string) (string, error) {
			return "R1", nil
		},
	}

	svc := newService(repo, cache, gen)
	turn, err := svc.SendMessage(context.Background(), "Hello", "conv-1")

	// The reply was already computed; the caller still gets it even though
	// the exchange was not recorded.
	require.NoError(t, err)
	assert.Equal(t, "R1", turn.Reply)
	assert.Equal(t, []chat.Sender{chat.SenderUser}, appends, "second write must not be attempted")
	assert.Zero(t, cached, "cache is only populated after successful persistence")
}

func TestSendMessageSecondAppendFailureSkipsCacheButReturnsReply(t *testing.T) {
	var cached int
	repo := &MockRepository{
		AppendMessageFunc: func(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
			if sender == chat.SenderAI {
				return errors.New("store unavailable")
			}
			return nil
		},
	}
	cache := &MockReplyCache{
		SetWithTTLFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
			cached++
			return nil
		},
	}

	svc := newService(repo, cache, &MockGenerator{})
	turn, err := svc.SendMessage(context.Background(), "Hello", "conv-1")

	require.NoError(t, err)
	assert.Equal(t, "reply", turn.Reply)
	assert.Zero(t, cached)
}

func TestSendMessageCacheWriteFailureIsNonFatal(t *testing.T) {
	cache := &MockReplyCache{
		SetWithTTLFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
			return errors.New("redis down")
		},
	}

	svc := newService(&MockRepository{}, cache, &MockGenerator{})
	turn, err := svc.SendMessage(context.Background(), "Hello", "conv-1")

	require.NoError(t, err)
	assert.Equal(t, "reply", turn.Reply)
}

func TestSendMessagePlaceholderReplyIsTreatedAsSuccess(t *testing.T) {
	var appends int
	repo := &MockRepository{
		AppendMessageFunc: func(ctx context.Context, conversationID string, sender chat.Sender, text string) error {
			appends++
			return nil
		},
	}
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, history []chat.Message, message string) (string, error) {
			return "Sorry, I couldn't generate a response.", nil
		},
	}

	svc := newService(repo, &MockReplyCache{}, gen)
	turn, err := svc.SendMessage(context.Background(), "Hello", "conv-1")

	require.NoError(t, err)
	assert.Equal(t, "Sorry, I couldn't generate a response.", turn.Reply)
	assert.Equal(t, 2, appends, "placeholder replies persist like any other")
}

func TestGetHistory(t *testing.T) {
	history := []chat.Message{
		{Sender: chat.SenderUser, Text: "Hi", Timestamp: time.Unix(1, 0)},
		{Sender: chat.SenderAI, Text: "Hello!", Timestamp: time.Unix(2, 0)},
	}
	repo := &MockRepository{
		ListMessagesFunc: func(ctx context.Context, conversationID string) ([]chat.Message, error) {
			if conversationID == "conv-1" {
				return history, nil
			}
			return []chat.Message{}, nil
		},
	}

	svc := newService(repo, &MockReplyCache{}, &MockGenerator{})

	got, err := svc.GetHistory(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, history, got)

	// Unknown ids are permissive: empty history, no error.
	got, err = svc.GetHistory(context.Background(), "unknown-id")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetHistoryStoreFailure(t *testing.T) {
	repo := &MockRepository{
		ListMessagesFunc: func(ctx context.Context, conversationID string) ([]chat.Message, error) {
			return nil, errors.New("store unavailable")
		},
	}

	svc := newService(repo, &MockReplyCache{}, &MockGenerator{})
	_, err := svc.GetHistory(context.Background(), "conv-1")
	require.Error(t, err)
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// replyCacheTTL bounds how long an identical message is served from cache.
	replyCacheTTL = 10 * time.Minute

	// cacheMarker is appended to cached replies so clients can tell their origin.
	cacheMarker = " (from cache)"
)

// Service is the message pipeline: session resolution, history retrieval,
// cache-aside lookup, generation and dual-write persistence for one chat turn,
// plus the read-only history query.
type Service interface {
	SendMessage(ctx context.Context, message, sessionID string) (Turn, error)
	GetHistory(ctx context.Context, sessionID string) ([]Message, error)
}

type service struct {
	repo  Repository
	cache ReplyCache
	gen   Generator
	log   zerolog.Logger
}

// NewService wires the chat pipeline with its collaborators.
func NewService(repo Repository, cache ReplyCache, gen Generator, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		cache: cache,
		gen:   gen,
		log:   log.With().Str("component", "chat-service").Logger(),
	}
}

// CacheKey derives the cache entry key for a conversation/message pair. The raw
// message text is part of the key: validation trims only for the emptiness
// check, so messages differing in surrounding whitespace cache separately.
func CacheKey(conversationID, message string) string {
	return fmt.Sprintf("conv:%s:msg:%s", conversationID, message)
}

func (s *service) SendMessage(ctx context.Context, message, sessionID string) (Turn, error) {
	if strings.TrimSpace(message) == "" {
		return Turn{}, ErrEmptyMessage
	}

	// A supplied session id is used as-is, with no existence check: an unknown
	// id simply yields empty history.
	conversationID := sessionID
	if conversationID == "" {
		id, err := s.repo.CreateConversation(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("create conversation")
			return Turn{}, err
		}
		conversationID = id
		s.log.Debug().Str("conversation_id", conversationID).Msg("created conversation")
	}

	history, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("fetch history")
		return Turn{ConversationID: conversationID}, err
	}

	key := CacheKey(conversationID, message)
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		// Cache hits short-circuit the turn entirely: no generation, no new
		// rows, no TTL refresh. A repeated message leaves history untouched.
		s.log.Debug().Str("cache_key", key).Msg("cache hit")
		return Turn{
			Reply:          cached + cacheMarker,
			ConversationID: conversationID,
			CacheHit:       true,
		}, nil
	case errors.Is(err, ErrCacheMiss):
	default:
		// A broken cache must not fail the turn; treat the lookup as a miss.
		s.log.Warn().Err(err).Str("cache_key", key).Msg("cache lookup failed")
	}

	reply, err := s.gen.Generate(ctx, history, message)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("generate reply")
		return Turn{ConversationID: conversationID}, err
	}

	turn := Turn{Reply: reply, ConversationID: conversationID}

	// Two separate writes, user first. If either fails the exchange is lost
	// from history, but the reply was already computed and is still returned.
	if err := s.repo.AppendMessage(ctx, conversationID, SenderUser, message); err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).
			Msg("persist user message failed, exchange not recorded")
		return turn, nil
	}
	if err := s.repo.AppendMessage(ctx, conversationID, SenderAI, reply); err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).
			Msg("persist ai message failed, exchange partially recorded")
		return turn, nil
	}

	if err := s.cache.SetWithTTL(ctx, key, reply, replyCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("cache_key", key).Msg("cache reply")
	}

	return turn, nil
}

func (s *service) GetHistory(ctx context.Context, sessionID string) ([]Message, error) {
	messages, err := s.repo.ListMessages(ctx, sessionID)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", sessionID).Msg("fetch history")
		return nil, err
	}
	return messages, nil
}

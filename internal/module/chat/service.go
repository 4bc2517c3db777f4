package chat

import (
	"context"
	"log/slog"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/pkg"
	"github.com/aulago/aulago/internal/query"
)

// ResourceConversations names the conversation list in the cache.
const ResourceConversations = "chat"

func messagesResource(conversationID string) string {
	return "chat/" + conversationID + "/messages"
}

// Service wraps the chat API with cache synchronization.
type Service struct {
	api      API
	resolver *query.Resolver
	pending  *query.Pending
	logger   *slog.Logger
}

// NewService creates the chat service.
func NewService(api API, resolver *query.Resolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:      api,
		resolver: resolver,
		pending:  query.NewPending(),
		logger:   logger,
	}
}

// Send validates and posts a message. Sending changes the message pages'
// membership and the conversation list's last-message preview, so both are
// invalidated rather than patched.
func (s *Service) Send(ctx context.Context, conversationID string, req SendMessageRequest) (*domain.Message, error) {
	if err := pkg.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !s.pending.Begin(conversationID) {
		return nil, domain.ErrPending
	}
	defer s.pending.End(conversationID)

	sent, err := s.api.Send(ctx, conversationID, req)
	if err != nil {
		return nil, err
	}

	cache := s.resolver.Cache()
	cache.Invalidate(query.Prefix(messagesResource(conversationID)))
	cache.Invalidate(query.Prefix(ResourceConversations))
	return sent, nil
}

// SendDisabled reports whether the send control for a conversation renders
// disabled because a send is already in flight.
func (s *Service) SendDisabled(conversationID string) bool {
	return s.pending.IsPending(conversationID)
}

package chat

import (
	"context"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/filter"
	"github.com/aulago/aulago/internal/listview"
	"github.com/aulago/aulago/internal/query"
)

// InboxScreen lists the user's conversations.
type InboxScreen struct {
	svc  *Service
	list *listview.Controller[domain.Conversation]
}

// NewInboxScreen creates the conversation list screen.
func NewInboxScreen(svc *Service, resolver *query.Resolver, limit int) *InboxScreen {
	return &InboxScreen{
		svc: svc,
		list: listview.NewController(resolver, ResourceConversations, limit,
			func(ctx context.Context, _ filter.Set, page, limit int) (*domain.Collection[domain.Conversation], error) {
				return svc.api.Conversations(ctx, page, limit)
			}),
	}
}

// Conversations renders the conversation list.
func (s *InboxScreen) Conversations(ctx context.Context) listview.View[domain.Conversation] {
	return s.list.View(ctx)
}

// List exposes the controller for pagination.
func (s *InboxScreen) List() *listview.Controller[domain.Conversation] {
	return s.list
}

// ThreadScreen shows one conversation's messages and the send control.
type ThreadScreen struct {
	svc            *Service
	conversationID string
	list           *listview.Controller[domain.Message]
}

// NewThreadScreen creates the thread screen for one conversation.
func NewThreadScreen(svc *Service, resolver *query.Resolver, conversationID string, limit int) *ThreadScreen {
	return &ThreadScreen{
		svc:            svc,
		conversationID: conversationID,
		list: listview.NewController(resolver, messagesResource(conversationID), limit,
			func(ctx context.Context, _ filter.Set, page, limit int) (*domain.Collection[domain.Message], error) {
				return svc.api.Messages(ctx, conversationID, page, limit)
			}),
	}
}

// Messages renders the message list.
func (s *ThreadScreen) Messages(ctx context.Context) listview.View[domain.Message] {
	return s.list.View(ctx)
}

// List exposes the controller for pagination.
func (s *ThreadScreen) List() *listview.Controller[domain.Message] {
	return s.list
}

// Send posts a message and returns the user-facing error message, empty on
// success. On success the next Messages render refetches the invalidated
// pages, so the sent message appears without manual refresh.
func (s *ThreadScreen) Send(ctx context.Context, text string) string {
	if _, err := s.svc.Send(ctx, s.conversationID, SendMessageRequest{Text: text}); err != nil {
		return listview.Translate(err)
	}
	return ""
}

// SendDisabled reports whether the send control renders disabled.
func (s *ThreadScreen) SendDisabled() bool {
	return s.svc.SendDisabled(s.conversationID)
}

package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/query"
)

type mockAPI struct {
	sendCalls int
	sendErr   error
}

func (m *mockAPI) Conversations(_ context.Context, page, _ int) (*domain.Collection[domain.Conversation], error) {
	col := &domain.Collection[domain.Conversation]{CurrentPage: page}
	col.Normalize()
	return col, nil
}

func (m *mockAPI) Messages(_ context.Context, _ string, page, _ int) (*domain.Collection[domain.Message], error) {
	col := &domain.Collection[domain.Message]{CurrentPage: page}
	col.Normalize()
	return col, nil
}

func (m *mockAPI) Send(_ context.Context, conversationID string, req SendMessageRequest) (*domain.Message, error) {
	m.sendCalls++
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return &domain.Message{ID: "m-new", ConversationID: conversationID, Text: req.Text}, nil
}

func newTestService(api *mockAPI) *Service {
	resolver := query.NewResolver(query.NewCache(time.Minute, 0), nil)
	return NewService(api, resolver, nil)
}

func TestSendInvalidatesThreadAndInbox(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(api)
	cache := svc.resolver.Cache()

	msgKey := query.Key(messagesResource("conv1"), nil, 1)
	inboxKey := query.Key(ResourceConversations, nil, 1)
	otherKey := query.Key(messagesResource("conv2"), nil, 1)
	cache.Set(msgKey, &domain.Collection[domain.Message]{})
	cache.Set(inboxKey, &domain.Collection[domain.Conversation]{})
	cache.Set(otherKey, &domain.Collection[domain.Message]{})

	sent, err := svc.Send(context.Background(), "conv1", SendMessageRequest{Text: "hola"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent.Text != "hola" {
		t.Errorf("sent = %+v", sent)
	}

	if _, fresh, _ := cache.Get(msgKey); fresh {
		t.Error("the conversation's message pages must be invalidated")
	}
	if _, fresh, _ := cache.Get(inboxKey); fresh {
		t.Error("the conversation list must be invalidated: its preview changed")
	}
	if _, fresh, _ := cache.Get(otherKey); !fresh {
		t.Error("other conversations must be untouched")
	}
}

func TestSendValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"over limit", strings.Repeat("a", 4001)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{}
			svc := newTestService(api)

			_, err := svc.Send(context.Background(), "conv1", SendMessageRequest{Text: tt.text})
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if api.sendCalls != 0 {
				t.Error("invalid message must not reach the network")
			}
		})
	}
}

func TestSendDuplicateRefused(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(api)

	svc.pending.Begin("conv1")
	defer svc.pending.End("conv1")

	_, err := svc.Send(context.Background(), "conv1", SendMessageRequest{Text: "hola"})
	if !domain.IsPending(err) {
		t.Fatalf("expected pending error, got %v", err)
	}
	if !svc.SendDisabled("conv1") {
		t.Error("send control must render disabled while pending")
	}
	if svc.SendDisabled("conv2") {
		t.Error("other conversations are not blocked")
	}
}

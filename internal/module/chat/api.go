package chat

import (
	"context"
	"net/url"
	"strconv"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/transport"
)

// API is the remote surface of the chat service.
type API interface {
	Conversations(ctx context.Context, page, limit int) (*domain.Collection[domain.Conversation], error)
	Messages(ctx context.Context, conversationID string, page, limit int) (*domain.Collection[domain.Message], error)
	Send(ctx context.Context, conversationID string, req SendMessageRequest) (*domain.Message, error)
}

type remoteAPI struct {
	client *transport.Client
}

// NewAPI creates the chat API over the given transport client.
func NewAPI(client *transport.Client) API {
	return &remoteAPI{client: client}
}

// Conversations fetches one page of the user's conversations. The list is
// the chat tab's landing view, so it retries on transient failures.
func (a *remoteAPI) Conversations(ctx context.Context, page, limit int) (*domain.Collection[domain.Conversation], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var col domain.Collection[domain.Conversation]
	if err := a.client.GetRetry(ctx, "/conversations", params, &col); err != nil {
		return nil, err
	}
	col.Normalize()
	return &col, nil
}

// Messages fetches one page of a conversation's messages.
func (a *remoteAPI) Messages(ctx context.Context, conversationID string, page, limit int) (*domain.Collection[domain.Message], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var col domain.Collection[domain.Message]
	if err := a.client.Get(ctx, "/conversations/"+url.PathEscape(conversationID)+"/messages", params, &col); err != nil {
		return nil, err
	}
	col.Normalize()
	return &col, nil
}

// Send posts a message to a conversation.
func (a *remoteAPI) Send(ctx context.Context, conversationID string, req SendMessageRequest) (*domain.Message, error) {
	var m domain.Message
	if err := a.client.Post(ctx, "/conversations/"+url.PathEscape(conversationID)+"/messages", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

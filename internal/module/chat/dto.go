package chat

// SendMessageRequest is the payload for posting a message to a conversation.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

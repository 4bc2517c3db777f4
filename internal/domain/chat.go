package domain

// Conversation is a chat thread between the user and a course contact.
type Conversation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	LastMessage string `json:"last_message"`
	UpdatedAt   string `json:"updated_at"`
	Unread      int    `json:"unread"`
}

// Message is a single chat message within a conversation.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	SenderName     string `json:"sender_name"`
	Text           string `json:"text"`
	SentAt         string `json:"sent_at"`
}

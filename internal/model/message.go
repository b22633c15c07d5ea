package model

import (
	"encoding/json"
	"time"
)

// Message is append-only: once created it is never mutated.
type Message struct {
	ID             int64           `json:"id"`
	ConversationID int64           `json:"conversationId"`
	Role           MessageRole     `json:"role"`
	Content        string          `json:"content"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type CreateMessageParams struct {
	ConversationID int64
	Role           MessageRole
	Content        string
	Metadata       json.RawMessage
}

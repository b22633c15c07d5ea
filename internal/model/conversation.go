package model

import (
	"encoding/json"
	"time"
)

type Conversation struct {
	ID           int64              `json:"id"`
	SessionID    string             `json:"sessionId"`
	CustomerID   *string            `json:"customerId,omitempty"`
	CustomerName *string            `json:"customerName,omitempty"`
	Status       ConversationStatus `json:"status"`
	LastMessage  string             `json:"lastMessage"`
	Context      json.RawMessage    `json:"context,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type CreateConversationParams struct {
	SessionID    string
	CustomerID   *string
	CustomerName *string
	Context      json.RawMessage
}

// ConversationPatch is a partial update. Nil fields are left untouched;
// Context is replaced wholesale when set.
type ConversationPatch struct {
	CustomerID   *string
	CustomerName *string
	Status       *ConversationStatus
	LastMessage  *string
	Context      json.RawMessage
}

package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID             int64           `json:"id"`
	ExternalID     *string         `json:"externalId,omitempty"`
	ConversationID *int64          `json:"conversationId,omitempty"`
	CustomerID     *string         `json:"customerId,omitempty"`
	CustomerEmail  string          `json:"customerEmail"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	Items          json.RawMessage `json:"items,omitempty"`
	Source         string          `json:"source"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type CreateOrderParams struct {
	ExternalID     *string
	ConversationID *int64
	CustomerID     *string
	CustomerEmail  string
	Status         string
	Total          decimal.Decimal
	Currency       string
	Items          json.RawMessage
	Source         string
}

// OrderPatch is a partial update; Items is replaced wholesale when set.
type OrderPatch struct {
	Status *string
	Total  *decimal.Decimal
	Items  json.RawMessage
}

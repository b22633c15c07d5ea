package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             int64            `json:"id"`
	ExternalID     *string          `json:"externalId,omitempty"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compareAtPrice,omitempty"`
	Category       string           `json:"category"`
	Tags           []string         `json:"tags"`
	Inventory      int              `json:"inventory"`
	ImageURL       string           `json:"imageUrl"`
	Active         bool             `json:"active"`
	SyncedAt       time.Time        `json:"syncedAt"`
}

// ProductDraft carries the fields supplied by the commerce platform (or a
// manual insert). An absent ExternalID marks a locally originated product.
type ProductDraft struct {
	ExternalID     *string
	Title          string
	Description    string
	Price          decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Category       string
	Tags           []string
	Inventory      int
	ImageURL       string
	Active         bool
}

type ProductPatch struct {
	Title          *string
	Description    *string
	Price          *decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Category       *string
	Tags           []string
	Inventory      *int
	ImageURL       *string
	Active         *bool
}

// Package commerce is the REST client for the e-commerce back office. It is
// a thin collaborator: the store owns all state, this client only moves
// catalog and order data over the wire.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vj-tring/SalesBoostAI-V1/internal/config"
	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: config.CommerceRequestTimeout},
	}
}

// Enabled reports whether a commerce platform is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// platformProduct mirrors the platform's product feed entry.
type platformProduct struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          string   `json:"price"`
	CompareAtPrice *string  `json:"compare_at_price"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Inventory      int      `json:"inventory"`
	ImageURL       string   `json:"image_url"`
	Active         bool     `json:"active"`
}

// FetchProducts pulls the full catalog from the platform as product drafts
// keyed by the platform's own id.
func (c *Client) FetchProducts(ctx context.Context) ([]model.ProductDraft, error) {
	if !c.Enabled() {
		return nil, apperrors.External("commerce platform", fmt.Errorf("COMMERCE_API_URL is not configured"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, apperrors.External("commerce platform", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.External("commerce platform", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.External("commerce platform", fmt.Errorf("unexpected status %s", resp.Status))
	}

	var payload struct {
		Products []platformProduct `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.External("commerce platform", fmt.Errorf("decode products: %w", err))
	}

	drafts := make([]model.ProductDraft, 0, len(payload.Products))
	for _, p := range payload.Products {
		draft, err := p.toDraft()
		if err != nil {
			return nil, apperrors.External("commerce platform", err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func (p platformProduct) toDraft() (model.ProductDraft, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return model.ProductDraft{}, fmt.Errorf("product %s: invalid price %q", p.ID, p.Price)
	}

	var compareAt *decimal.Decimal
	if p.CompareAtPrice != nil {
		parsed, err := decimal.NewFromString(*p.CompareAtPrice)
		if err != nil {
			return model.ProductDraft{}, fmt.Errorf("product %s: invalid compare_at_price %q", p.ID, *p.CompareAtPrice)
		}
		compareAt = &parsed
	}

	externalID := p.ID
	return model.ProductDraft{
		ExternalID:     &externalID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          price.Round(2),
		CompareAtPrice: compareAt,
		Category:       p.Category,
		Tags:           p.Tags,
		Inventory:      p.Inventory,
		ImageURL:       p.ImageURL,
		Active:         p.Active,
	}, nil
}

// PushOrder forwards a recorded order to the platform, best effort.
func (c *Client) PushOrder(ctx context.Context, order model.Order) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"external_id":    order.ExternalID,
		"customer_email": order.CustomerEmail,
		"status":         order.Status,
		"total":          order.Total.StringFixed(2),
		"currency":       order.Currency,
		"items":          order.Items,
		"source":         order.Source,
	})
	if err != nil {
		return apperrors.External("commerce platform", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return apperrors.External("commerce platform", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.External("commerce platform", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.External("commerce platform", fmt.Errorf("unexpected status %s", resp.Status))
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

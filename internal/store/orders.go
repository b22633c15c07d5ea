package store

import (
	"sort"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

func copyOrder(o model.Order) *model.Order {
	o.Items = cloneBytes(o.Items)
	return &o
}

func (s *Store) CreateOrder(params model.CreateOrderParams) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	o := model.Order{
		ID:             s.allocID(),
		ExternalID:     params.ExternalID,
		ConversationID: params.ConversationID,
		CustomerID:     params.CustomerID,
		CustomerEmail:  params.CustomerEmail,
		Status:         params.Status,
		Total:          params.Total,
		Currency:       params.Currency,
		Items:          cloneBytes(params.Items),
		Source:         params.Source,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	if o.Status == "" {
		o.Status = model.DefaultOrderStatus
	}
	if o.Currency == "" {
		o.Currency = model.DefaultOrderCurrency
	}
	if o.Source == "" {
		o.Source = model.DefaultOrderSource
	}

	s.orders[o.ID] = o
	return copyOrder(o)
}

func (s *Store) GetOrder(id int64) *model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil
	}
	return copyOrder(o)
}

func (s *Store) GetOrderByExternalID(externalID string) *model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ExternalID != nil && *o.ExternalID == externalID {
			return copyOrder(o)
		}
	}
	return nil
}

// UpdateOrder applies a shallow merge and re-stamps UpdatedAt.
// Returns nil if the id is absent.
func (s *Store) UpdateOrder(id int64, patch model.OrderPatch) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil
	}

	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.Total != nil {
		o.Total = *patch.Total
	}
	if patch.Items != nil {
		o.Items = cloneBytes(patch.Items)
	}
	o.UpdatedAt = now()

	s.orders[id] = o
	return copyOrder(o)
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

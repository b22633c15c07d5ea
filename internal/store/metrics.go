package store

import (
	"github.com/shopspring/decimal"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

// Metrics computes the dashboard aggregate from the current snapshot.
// Stateless and recomputed on every call; O(conversations + orders).
func (s *Store) Metrics() model.BusinessMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := model.BusinessMetrics{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	m.TotalConversations = len(s.conversations)
	for _, conv := range s.conversations {
		if conv.Status == model.ConversationStatusActive {
			m.ActiveConversations++
		}
	}

	converted := make(map[int64]struct{})
	for _, o := range s.orders {
		m.TotalOrders++
		if o.ConversationID != nil {
			converted[*o.ConversationID] = struct{}{}
		}
		if o.Status == "completed" {
			m.CompletedOrders++
			m.TotalRevenue = m.TotalRevenue.Add(o.Total)
		}
	}

	if m.TotalConversations > 0 {
		m.ConversionRate = float64(len(converted)) / float64(m.TotalConversations)
	}
	if m.CompletedOrders > 0 {
		m.AverageOrderValue = m.TotalRevenue.DivRound(decimal.NewFromInt(int64(m.CompletedOrders)), 2)
	}

	return m
}

package store

import (
	"math"
	"sort"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

// CreateRecommendation records an AI-proposed product for a conversation.
// Confidence is rounded to 2 decimals; validation of the [0, 1] range is the
// caller's responsibility. Returns nil if the conversation or product does
// not exist.
func (s *Store) CreateRecommendation(params model.CreateRecommendationParams) *model.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[params.ConversationID]; !ok {
		return nil
	}
	if _, ok := s.products[params.ProductID]; !ok {
		return nil
	}

	rec := model.Recommendation{
		ID:             s.allocID(),
		ConversationID: params.ConversationID,
		ProductID:      params.ProductID,
		Type:           params.Type,
		Confidence:     math.Round(params.Confidence*100) / 100,
		Reason:         params.Reason,
		Presented:      params.Presented,
		CreatedAt:      now(),
	}
	s.recommendations[rec.ID] = rec
	rc := rec
	return &rc
}

func (s *Store) GetRecommendation(id int64) *model.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recommendations[id]
	if !ok {
		return nil
	}
	rc := rec
	return &rc
}

// AcceptRecommendation flips the accepted flag. The triggering signal comes
// from outside; the store only records it. Returns nil if the id is absent.
func (s *Store) AcceptRecommendation(id int64) *model.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recommendations[id]
	if !ok {
		return nil
	}
	rec.Accepted = true
	s.recommendations[id] = rec
	rc := rec
	return &rc
}

// ListRecommendations returns a conversation's recommendations, oldest first.
func (s *Store) ListRecommendations(conversationID int64) []model.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Recommendation, 0)
	for _, rec := range s.recommendations {
		if rec.ConversationID == conversationID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TopRecommendedProducts groups recommendations by product, computes count
// and acceptance rate, and returns the products with the most
// recommendations first, truncated to limit. Tie order is unspecified.
func (s *Store) TopRecommendedProducts(limit int) []model.TopProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type group struct {
		count    int
		accepted int
	}
	groups := make(map[int64]*group)
	for _, rec := range s.recommendations {
		g, ok := groups[rec.ProductID]
		if !ok {
			g = &group{}
			groups[rec.ProductID] = g
		}
		g.count++
		if rec.Accepted {
			g.accepted++
		}
	}

	out := make([]model.TopProduct, 0, len(groups))
	for productID, g := range groups {
		p, ok := s.products[productID]
		if !ok {
			continue
		}
		rate := 0.0
		if g.count > 0 {
			rate = float64(g.accepted) / float64(g.count)
		}
		out = append(out, model.TopProduct{
			Product:         *copyProduct(p),
			Recommendations: g.count,
			SuccessRate:     rate,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Recommendations > out[j].Recommendations
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

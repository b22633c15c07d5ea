package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

func seedConvAndProducts(t *testing.T, s *Store) (convID, prodA, prodB int64) {
	t.Helper()
	conv := s.CreateConversation(model.CreateConversationParams{SessionID: "s1"})
	a := s.CreateProduct(model.ProductDraft{Title: "A", Price: decimal.NewFromInt(10), Active: true})
	b := s.CreateProduct(model.ProductDraft{Title: "B", Price: decimal.NewFromInt(20), Active: true})
	return conv.ID, a.ID, b.ID
}

func TestCreateRecommendation(t *testing.T) {
	t.Run("rounds confidence to 2 decimals", func(t *testing.T) {
		s := New()
		convID, prodA, _ := seedConvAndProducts(t, s)

		rec := s.CreateRecommendation(model.CreateRecommendationParams{
			ConversationID: convID,
			ProductID:      prodA,
			Type:           model.RecommendationTypeUpsell,
			Confidence:     0.876,
		})
		require.NotNil(t, rec)
		assert.Equal(t, 0.88, rec.Confidence)
		assert.False(t, rec.Accepted)
	})

	t.Run("returns nil for missing conversation", func(t *testing.T) {
		s := New()
		_, prodA, _ := seedConvAndProducts(t, s)
		assert.Nil(t, s.CreateRecommendation(model.CreateRecommendationParams{ConversationID: 999, ProductID: prodA}))
	})

	t.Run("returns nil for missing product", func(t *testing.T) {
		s := New()
		convID, _, _ := seedConvAndProducts(t, s)
		assert.Nil(t, s.CreateRecommendation(model.CreateRecommendationParams{ConversationID: convID, ProductID: 999}))
	})

	t.Run("duplicates across turns are permitted", func(t *testing.T) {
		s := New()
		convID, prodA, _ := seedConvAndProducts(t, s)

		for i := 0; i < 2; i++ {
			rec := s.CreateRecommendation(model.CreateRecommendationParams{
				ConversationID: convID, ProductID: prodA, Type: model.RecommendationTypePrimary, Confidence: 0.5,
			})
			require.NotNil(t, rec)
		}
		assert.Len(t, s.ListRecommendations(convID), 2)
	})
}

func TestAcceptRecommendation(t *testing.T) {
	t.Run("flips accepted flag", func(t *testing.T) {
		s := New()
		convID, prodA, _ := seedConvAndProducts(t, s)
		rec := s.CreateRecommendation(model.CreateRecommendationParams{ConversationID: convID, ProductID: prodA, Confidence: 0.9})

		accepted := s.AcceptRecommendation(rec.ID)
		require.NotNil(t, accepted)
		assert.True(t, accepted.Accepted)
	})

	t.Run("returns nil for missing id", func(t *testing.T) {
		s := New()
		assert.Nil(t, s.AcceptRecommendation(123))
	})
}

func TestTopRecommendedProducts(t *testing.T) {
	t.Run("groups counts and acceptance rate", func(t *testing.T) {
		s := New()
		convID, prodA, prodB := seedConvAndProducts(t, s)

		// prodA: 3 recommendations, 1 accepted; prodB: 1 recommendation, 1 accepted
		var firstA *model.Recommendation
		for i := 0; i < 3; i++ {
			rec := s.CreateRecommendation(model.CreateRecommendationParams{ConversationID: convID, ProductID: prodA, Confidence: 0.5})
			if firstA == nil {
				firstA = rec
			}
		}
		s.AcceptRecommendation(firstA.ID)

		recB := s.CreateRecommendation(model.CreateRecommendationParams{ConversationID: convID, ProductID: prodB, Confidence: 0.5})
		s.AcceptRecommendation(recB.ID)

		top := s.TopRecommendedProducts(1)
		require.Len(t, top, 1)
		assert.Equal(t, prodA, top[0].Product.ID)
		assert.Equal(t, 3, top[0].Recommendations)
		assert.InDelta(t, 1.0/3.0, top[0].SuccessRate, 1e-9)
	})

	t.Run("truncates to limit sorted by count", func(t *testing.T) {
		s := New()
		convID, prodA, prodB := seedConvAndProducts(t, s)

		s.CreateRecommendation(model.CreateRecommendationParams{ConversationID: convID, ProductID: prodA, Confidence: 0.5})
		for i := 0; i < 2; i++ {
			s.CreateRecommendation(model.CreateRecommendationParams{ConversationID: convID, ProductID: prodB, Confidence: 0.5})
		}

		top := s.TopRecommendedProducts(2)
		require.Len(t, top, 2)
		assert.Equal(t, prodB, top[0].Product.ID)
		assert.Equal(t, 2, top[0].Recommendations)
	})

	t.Run("empty store returns empty slice", func(t *testing.T) {
		s := New()
		assert.Empty(t, s.TopRecommendedProducts(5))
	})
}

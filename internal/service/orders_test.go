package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
	"github.com/vj-tring/SalesBoostAI-V1/internal/webhook"
)

type stubForwarder struct {
	enabled bool
	err     error
	pushed  []model.Order
}

func (s *stubForwarder) PushOrder(_ context.Context, order model.Order) error {
	s.pushed = append(s.pushed, order)
	return s.err
}

func (s *stubForwarder) Enabled() bool { return s.enabled }

func TestOrderCreate(t *testing.T) {
	t.Run("records, announces and forwards", func(t *testing.T) {
		st := store.New()
		dispatcher := &stubDispatcher{}
		forwarder := &stubForwarder{enabled: true}
		svc := NewOrderService(st, forwarder, dispatcher, nil)

		conv := st.CreateConversation(model.CreateConversationParams{SessionID: "s1"})
		order, err := svc.Create(context.Background(), model.CreateOrderParams{
			ConversationID: &conv.ID,
			CustomerEmail:  "buyer@example.com",
			Total:          decimal.RequireFromString("42.10"),
		})
		require.NoError(t, err)
		assert.Equal(t, model.DefaultOrderStatus, order.Status)
		assert.Equal(t, model.DefaultOrderCurrency, order.Currency)
		assert.Equal(t, model.DefaultOrderSource, order.Source)

		assert.Equal(t, []string{webhook.EventOrderCreated}, dispatcher.names())
		require.Len(t, forwarder.pushed, 1)
		assert.Equal(t, order.ID, forwarder.pushed[0].ID)
	})

	t.Run("forwarding failure does not fail the order", func(t *testing.T) {
		svc := NewOrderService(store.New(), &stubForwarder{enabled: true, err: assert.AnError}, &stubDispatcher{}, nil)
		order, err := svc.Create(context.Background(), model.CreateOrderParams{
			CustomerEmail: "buyer@example.com",
			Total:         decimal.RequireFromString("10.00"),
		})
		require.NoError(t, err)
		assert.NotZero(t, order.ID)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewOrderService(store.New(), nil, nil, nil)

		_, err := svc.Create(context.Background(), model.CreateOrderParams{Total: decimal.Zero})
		assert.Error(t, err, "missing email")

		_, err = svc.Create(context.Background(), model.CreateOrderParams{
			CustomerEmail: "a@b.c",
			Total:         decimal.RequireFromString("-5"),
		})
		assert.Error(t, err, "negative total")

		missing := int64(9999)
		_, err = svc.Create(context.Background(), model.CreateOrderParams{
			CustomerEmail:  "a@b.c",
			Total:          decimal.Zero,
			ConversationID: &missing,
		})
		assert.Error(t, err, "unknown conversation")
	})

	t.Run("duplicate external id conflicts", func(t *testing.T) {
		svc := NewOrderService(store.New(), nil, nil, nil)
		ext := "shop-1001"
		_, err := svc.Create(context.Background(), model.CreateOrderParams{
			CustomerEmail: "a@b.c", Total: decimal.Zero, ExternalID: &ext,
		})
		require.NoError(t, err)
		_, err = svc.Create(context.Background(), model.CreateOrderParams{
			CustomerEmail: "a@b.c", Total: decimal.Zero, ExternalID: &ext,
		})
		assert.Error(t, err)
	})
}

func TestOrderUpdateList(t *testing.T) {
	svc := NewOrderService(store.New(), nil, nil, nil)
	order, err := svc.Create(context.Background(), model.CreateOrderParams{
		CustomerEmail: "a@b.c",
		Total:         decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	status := "completed"
	updated, err := svc.Update(order.ID, model.OrderPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	_, err = svc.Update(9999, model.OrderPatch{})
	assert.Error(t, err)

	assert.Len(t, svc.List(), 1)
}

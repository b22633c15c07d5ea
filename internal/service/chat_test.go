package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vj-tring/SalesBoostAI-V1/internal/ai"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
	"github.com/vj-tring/SalesBoostAI-V1/internal/webhook"
)

type stubResponder struct {
	reply *ai.Reply
	err   error

	mu       sync.Mutex
	history  []model.Message
	catalog  []model.Product
	messages []string
}

func (r *stubResponder) Respond(_ context.Context, history []model.Message, catalog []model.Product, userMessage string) (*ai.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = history
	r.catalog = catalog
	r.messages = append(r.messages, userMessage)
	if r.err != nil {
		return nil, r.err
	}
	return r.reply, nil
}

type recordedEvent struct {
	Event          string
	ConversationID *int64
}

type stubDispatcher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (d *stubDispatcher) Dispatch(event string, _ any, conversationID *int64, _ *string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, recordedEvent{Event: event, ConversationID: conversationID})
}

func (d *stubDispatcher) names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.events))
	for i, e := range d.events {
		out[i] = e.Event
	}
	return out
}

func seedProduct(t *testing.T, st *store.Store, title string) *model.Product {
	t.Helper()
	p := st.CreateProduct(model.ProductDraft{
		Title:  title,
		Price:  decimal.RequireFromString("19.99"),
		Active: true,
	})
	require.NotNil(t, p)
	return p
}

func TestHandleMessage(t *testing.T) {
	t.Run("creates conversation and fires started once per session", func(t *testing.T) {
		st := store.New()
		responder := &stubResponder{reply: &ai.Reply{Text: "hello there"}}
		dispatcher := &stubDispatcher{}
		svc := NewChatService(st, responder, dispatcher, nil, nil)

		first, err := svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "s1", first.SessionID)
		assert.Equal(t, "hello there", first.Reply)

		second, err := svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "more"})
		require.NoError(t, err)
		assert.Equal(t, first.ConversationID, second.ConversationID)

		assert.Equal(t, []string{webhook.EventConversationStarted}, dispatcher.names())

		msgs := st.ListMessages(first.ConversationID)
		require.Len(t, msgs, 4)
		assert.Equal(t, model.MessageRoleUser, msgs[0].Role)
		assert.Equal(t, model.MessageRoleAssistant, msgs[1].Role)
	})

	t.Run("generates a session id when absent", func(t *testing.T) {
		st := store.New()
		svc := NewChatService(st, &stubResponder{reply: &ai.Reply{Text: "ok"}}, &stubDispatcher{}, nil, nil)

		resp, err := svc.HandleMessage(context.Background(), ChatRequest{Message: "hi"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.SessionID)
	})

	t.Run("rejects an empty message", func(t *testing.T) {
		svc := NewChatService(store.New(), &stubResponder{}, &stubDispatcher{}, nil, nil)
		_, err := svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1"})
		assert.Error(t, err)
	})

	t.Run("stores valid suggestions and drops unknown products", func(t *testing.T) {
		st := store.New()
		product := seedProduct(t, st, "Trail Shoe")
		responder := &stubResponder{reply: &ai.Reply{
			Text: "try these",
			Suggestions: []ai.Suggestion{
				{ProductID: product.ID, Type: "upsell", Confidence: 0.9, Reason: "fits"},
				{ProductID: 9999, Type: "upsell", Confidence: 0.9, Reason: "ghost"},
				{ProductID: product.ID, Type: "bogus", Confidence: 1.7, Reason: "clamped"},
			},
		}}
		svc := NewChatService(st, responder, &stubDispatcher{}, nil, nil)

		resp, err := svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "hi"})
		require.NoError(t, err)
		require.Len(t, resp.Recommendations, 2)

		assert.Equal(t, model.RecommendationTypeUpsell, resp.Recommendations[0].Type)
		assert.True(t, resp.Recommendations[0].Presented)
		// unknown type falls back, out-of-range confidence is clamped
		assert.Equal(t, model.RecommendationTypeCrossSell, resp.Recommendations[1].Type)
		assert.Equal(t, 1.0, resp.Recommendations[1].Confidence)
	})

	t.Run("escalation flips status and fires the event", func(t *testing.T) {
		st := store.New()
		dispatcher := &stubDispatcher{}
		responder := &stubResponder{reply: &ai.Reply{Text: "connecting you", Escalate: true}}
		svc := NewChatService(st, responder, dispatcher, nil, nil)

		resp, err := svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "human please"})
		require.NoError(t, err)
		assert.True(t, resp.Escalated)

		conv := st.GetConversation(resp.ConversationID)
		require.NotNil(t, conv)
		assert.Equal(t, model.ConversationStatusEscalated, conv.Status)
		assert.Contains(t, dispatcher.names(), webhook.EventConversationEscalated)

		// a second escalated reply does not fire the event again
		_, err = svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "still here"})
		require.NoError(t, err)
		count := 0
		for _, name := range dispatcher.names() {
			if name == webhook.EventConversationEscalated {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("passes active catalog and prior history to the model", func(t *testing.T) {
		st := store.New()
		active := seedProduct(t, st, "Active")
		inactive := st.CreateProduct(model.ProductDraft{Title: "Hidden", Price: decimal.Zero, Active: false})
		require.NotNil(t, inactive)

		responder := &stubResponder{reply: &ai.Reply{Text: "ok"}}
		svc := NewChatService(st, responder, &stubDispatcher{}, nil, nil)

		_, err := svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "first"})
		require.NoError(t, err)
		_, err = svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "second"})
		require.NoError(t, err)

		responder.mu.Lock()
		defer responder.mu.Unlock()
		require.Len(t, responder.catalog, 1)
		assert.Equal(t, active.ID, responder.catalog[0].ID)
		// second turn sees the first user message and the assistant reply,
		// oldest first; the in-flight message travels separately
		require.Len(t, responder.history, 2)
		assert.Equal(t, "first", responder.history[0].Content)
		assert.Equal(t, "ok", responder.history[1].Content)
		assert.Equal(t, []string{"first", "second"}, responder.messages)
	})

	t.Run("model failure surfaces and keeps the user message", func(t *testing.T) {
		st := store.New()
		responder := &stubResponder{err: assert.AnError}
		svc := NewChatService(st, responder, &stubDispatcher{}, nil, nil)

		_, err := svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "hi"})
		require.Error(t, err)

		conv := st.GetConversationBySession("s1")
		require.NotNil(t, conv)
		assert.Len(t, st.ListMessages(conv.ID), 1)
	})
}

func TestUpdateStatus(t *testing.T) {
	st := store.New()
	dispatcher := &stubDispatcher{}
	svc := NewChatService(st, &stubResponder{reply: &ai.Reply{Text: "ok"}}, dispatcher, nil, nil)

	resp, err := svc.HandleMessage(context.Background(), ChatRequest{SessionID: "s1", Message: "hi"})
	require.NoError(t, err)

	t.Run("completed fires conversation.completed", func(t *testing.T) {
		conv, err := svc.UpdateStatus(context.Background(), resp.ConversationID, model.ConversationStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, model.ConversationStatusCompleted, conv.Status)
		assert.Contains(t, dispatcher.names(), webhook.EventConversationCompleted)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), resp.ConversationID, model.ConversationStatus("archived"))
		assert.Error(t, err)
	})

	t.Run("unknown conversation", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), 9999, model.ConversationStatusCompleted)
		assert.Error(t, err)
	})
}

func TestAcceptRecommendation(t *testing.T) {
	st := store.New()
	product := seedProduct(t, st, "Trail Shoe")
	dispatcher := &stubDispatcher{}
	svc := NewChatService(st, &stubResponder{reply: &ai.Reply{Text: "ok"}}, dispatcher, nil, nil)

	conv := st.CreateConversation(model.CreateConversationParams{SessionID: "s1"})
	rec := st.CreateRecommendation(model.CreateRecommendationParams{
		ConversationID: conv.ID,
		ProductID:      product.ID,
		Type:           model.RecommendationTypeUpsell,
		Confidence:     0.8,
		Presented:      true,
	})
	require.NotNil(t, rec)

	t.Run("accept fires upsell.success", func(t *testing.T) {
		accepted, err := svc.AcceptRecommendation(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.True(t, accepted.Accepted)
		assert.Contains(t, dispatcher.names(), webhook.EventUpsellSuccess)
	})

	t.Run("unknown recommendation", func(t *testing.T) {
		_, err := svc.AcceptRecommendation(context.Background(), 9999)
		assert.Error(t, err)
	})
}

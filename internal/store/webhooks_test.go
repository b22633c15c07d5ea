package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

func TestWebhookSubscriptions(t *testing.T) {
	t.Run("create starts active", func(t *testing.T) {
		s := New()
		sub := s.CreateWebhookSubscription(model.CreateWebhookSubscriptionParams{
			URL:    "https://hooks.example/a",
			Events: []string{"order.created"},
			Secret: "secret",
		})

		assert.True(t, sub.Active)
		assert.Nil(t, sub.LastTriggeredAt)
	})

	t.Run("update deactivates", func(t *testing.T) {
		s := New()
		sub := s.CreateWebhookSubscription(model.CreateWebhookSubscriptionParams{URL: "https://hooks.example/a", Events: []string{"order.created"}, Secret: "x"})

		inactive := false
		updated := s.UpdateWebhookSubscription(sub.ID, model.WebhookSubscriptionPatch{Active: &inactive})
		require.NotNil(t, updated)
		assert.False(t, updated.Active)
	})

	t.Run("delete removes from candidate set", func(t *testing.T) {
		s := New()
		sub := s.CreateWebhookSubscription(model.CreateWebhookSubscriptionParams{URL: "https://hooks.example/a", Events: []string{"order.created"}, Secret: "x"})

		assert.True(t, s.DeleteWebhookSubscription(sub.ID))
		assert.False(t, s.DeleteWebhookSubscription(sub.ID))
		assert.Empty(t, s.ActiveSubscriptionsFor("order.created"))
	})

	t.Run("active subscriptions filter by event and flag", func(t *testing.T) {
		s := New()
		s.CreateWebhookSubscription(model.CreateWebhookSubscriptionParams{URL: "https://hooks.example/a", Events: []string{"order.created"}, Secret: "x"})
		s.CreateWebhookSubscription(model.CreateWebhookSubscriptionParams{URL: "https://hooks.example/b", Events: []string{"order.created", "conversation.started"}, Secret: "y"})
		off := s.CreateWebhookSubscription(model.CreateWebhookSubscriptionParams{URL: "https://hooks.example/c", Events: []string{"order.created"}, Secret: "z"})

		inactive := false
		s.UpdateWebhookSubscription(off.ID, model.WebhookSubscriptionPatch{Active: &inactive})

		assert.Len(t, s.ActiveSubscriptionsFor("order.created"), 2)
		assert.Len(t, s.ActiveSubscriptionsFor("conversation.started"), 1)
		assert.Empty(t, s.ActiveSubscriptionsFor("upsell.success"))
	})

	t.Run("touch stamps last triggered", func(t *testing.T) {
		s := New()
		sub := s.CreateWebhookSubscription(model.CreateWebhookSubscriptionParams{URL: "https://hooks.example/a", Events: []string{"webhook.test"}, Secret: "x"})

		s.TouchWebhookSubscription(sub.ID)
		got := s.GetWebhookSubscription(sub.ID)
		require.NotNil(t, got)
		assert.NotNil(t, got.LastTriggeredAt)
	})
}

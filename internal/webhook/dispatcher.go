// Package webhook fans business events out to subscriber endpoints. Each
// delivery is one signed HTTP request with a bounded timeout; there is no
// retry and no delivery log, so the guarantee is best-effort at-most-once.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vj-tring/SalesBoostAI-V1/internal/config"
	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/metrics"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
	"github.com/vj-tring/SalesBoostAI-V1/internal/util"
)

// Event names emitted by the service.
const (
	EventConversationStarted   = "conversation.started"
	EventConversationCompleted = "conversation.completed"
	EventConversationEscalated = "conversation.escalated"
	EventOrderCreated          = "order.created"
	EventUpsellSuccess         = "upsell.success"
	EventTest                  = "webhook.test"
)

// KnownEvents lists the event names a subscription may declare, plus
// webhook.test which every subscription receives on an explicit test.
var KnownEvents = []string{
	EventConversationStarted,
	EventConversationCompleted,
	EventConversationEscalated,
	EventOrderCreated,
	EventUpsellSuccess,
	EventTest,
}

// KnownEvent reports whether name is one of the emitted event names.
func KnownEvent(name string) bool {
	for _, e := range KnownEvents {
		if e == name {
			return true
		}
	}
	return false
}

const (
	HeaderSignature = "X-Webhook-Signature"
	HeaderEvent     = "X-Webhook-Event"
)

// Envelope is the payload delivered to every matching subscription. It is
// serialized once per event; each subscription signs those exact bytes.
type Envelope struct {
	Event          string  `json:"event"`
	Timestamp      string  `json:"timestamp"`
	Data           any     `json:"data"`
	ConversationID *int64  `json:"conversationId,omitempty"`
	CustomerID     *string `json:"customerId,omitempty"`
}

// Delivery is the per-target outcome of one fan-out.
type Delivery struct {
	SubscriptionID int64  `json:"subscriptionId"`
	URL            string `json:"url"`
	Success        bool   `json:"success"`
	StatusCode     int    `json:"statusCode,omitempty"`
	Error          string `json:"error,omitempty"`
}

type Dispatcher struct {
	store   *store.Store
	metrics *metrics.Metrics
	client  *http.Client
}

func NewDispatcher(st *store.Store, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		store:   st,
		metrics: m,
		client:  &http.Client{Timeout: config.WebhookDeliveryTimeout},
	}
}

// Dispatch fans the event out to matching subscriptions without blocking the
// caller. Outcomes are logged and counted, not returned.
func (d *Dispatcher) Dispatch(event string, data any, conversationID *int64, customerID *string) {
	go func() {
		d.fanOut(context.Background(), event, data, conversationID, customerID)
	}()
}

// fanOut delivers the event to every active interested subscription
// concurrently and waits for all attempts to settle. One slow or failing
// target never blocks or fails the others.
func (d *Dispatcher) fanOut(ctx context.Context, event string, data any, conversationID *int64, customerID *string) []Delivery {
	subs := d.store.ActiveSubscriptionsFor(event)
	if len(subs) == 0 {
		return nil
	}

	body, err := json.Marshal(Envelope{
		Event:          event,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Data:           data,
		ConversationID: conversationID,
		CustomerID:     customerID,
	})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal webhook envelope")
		return nil
	}

	results := make([]Delivery, len(subs))
	done := make(chan struct{})
	for i, sub := range subs {
		go func(i int, sub model.WebhookSubscription) {
			results[i] = d.deliver(ctx, sub, event, body)
			done <- struct{}{}
		}(i, sub)
	}
	for range subs {
		<-done
	}

	delivered := 0
	for _, r := range results {
		if r.Success {
			delivered++
		}
	}
	log.Info().
		Str("event", event).
		Int("targets", len(subs)).
		Int("delivered", delivered).
		Msg("webhook fan-out settled")

	return results
}

// deliver issues one signed request to one subscription. Any non-2xx status,
// timeout, or transport error is a failure for this target only.
func (d *Dispatcher) deliver(ctx context.Context, sub model.WebhookSubscription, event string, body []byte) Delivery {
	result := Delivery{SubscriptionID: sub.ID, URL: sub.URL}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		result.Error = err.Error()
		d.record(event, false)
		return result
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSignature, util.Sign(sub.Secret, body))
	req.Header.Set(HeaderEvent, event)

	resp, err := d.client.Do(req)
	if err != nil {
		result.Error = err.Error()
		log.Warn().
			Err(err).
			Int64("subscriptionId", sub.ID).
			Str("event", event).
			Msg("webhook delivery failed")
		d.record(event, false)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Success {
		result.Error = resp.Status
		log.Warn().
			Int64("subscriptionId", sub.ID).
			Str("event", event).
			Int("status", resp.StatusCode).
			Msg("webhook delivery rejected")
	}
	d.record(event, result.Success)
	return result
}

// Test delivers a synchronous webhook.test event to one subscription and
// reports the outcome. The last-triggered timestamp is stamped on success.
func (d *Dispatcher) Test(ctx context.Context, subscriptionID int64) (*Delivery, error) {
	sub := d.store.GetWebhookSubscription(subscriptionID)
	if sub == nil {
		return nil, apperrors.NotFound("Webhook subscription")
	}

	body, err := json.Marshal(Envelope{
		Event:     EventTest,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      map[string]any{"subscriptionId": sub.ID},
	})
	if err != nil {
		return nil, apperrors.Internal("failed to marshal test envelope").WithCause(err)
	}

	result := d.deliver(ctx, *sub, EventTest, body)
	if result.Success {
		d.store.TouchWebhookSubscription(sub.ID)
	}
	return &result, nil
}

func (d *Dispatcher) record(event string, success bool) {
	if d.metrics == nil {
		return
	}
	outcome := "delivered"
	if !success {
		outcome = "failed"
	}
	d.metrics.WebhookDeliveries.WithLabelValues(event, outcome).Inc()
}

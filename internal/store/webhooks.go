package store

import (
	"sort"
	"time"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

func copySubscription(sub model.WebhookSubscription) *model.WebhookSubscription {
	sub.Events = cloneStrings(sub.Events)
	return &sub
}

func (s *Store) CreateWebhookSubscription(params model.CreateWebhookSubscriptionParams) *model.WebhookSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := model.WebhookSubscription{
		ID:          s.allocID(),
		URL:         params.URL,
		Events:      cloneStrings(params.Events),
		Secret:      params.Secret,
		Active:      true,
		Description: params.Description,
		CreatedAt:   now(),
	}
	s.subscriptions[sub.ID] = sub
	return copySubscription(sub)
}

func (s *Store) GetWebhookSubscription(id int64) *model.WebhookSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return nil
	}
	return copySubscription(sub)
}

// UpdateWebhookSubscription applies a shallow merge.
// Returns nil if the id is absent.
func (s *Store) UpdateWebhookSubscription(id int64, patch model.WebhookSubscriptionPatch) *model.WebhookSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return nil
	}

	if patch.URL != nil {
		sub.URL = *patch.URL
	}
	if patch.Events != nil {
		sub.Events = cloneStrings(patch.Events)
	}
	if patch.Active != nil {
		sub.Active = *patch.Active
	}
	if patch.Description != nil {
		sub.Description = patch.Description
	}

	s.subscriptions[id] = sub
	return copySubscription(sub)
}

// DeleteWebhookSubscription removes the subscription from the dispatcher's
// candidate set. Reports whether it existed.
func (s *Store) DeleteWebhookSubscription(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscriptions[id]; !ok {
		return false
	}
	delete(s.subscriptions, id)
	return true
}

func (s *Store) ListWebhookSubscriptions() []model.WebhookSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.WebhookSubscription, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		out = append(out, *copySubscription(sub))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveSubscriptionsFor returns the active subscriptions whose event set
// contains the given event name.
func (s *Store) ActiveSubscriptionsFor(event string) []model.WebhookSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.WebhookSubscription, 0)
	for _, sub := range s.subscriptions {
		if sub.Active && sub.SubscribedTo(event) {
			out = append(out, *copySubscription(sub))
		}
	}
	return out
}

// TouchWebhookSubscription stamps LastTriggeredAt after a successful test
// delivery.
func (s *Store) TouchWebhookSubscription(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return
	}
	ts := time.Now().UTC()
	sub.LastTriggeredAt = &ts
	s.subscriptions[id] = sub
}

package model

import "time"

type WebhookSubscription struct {
	ID              int64      `json:"id"`
	URL             string     `json:"url"`
	Events          []string   `json:"events"`
	Secret          string     `json:"secret,omitempty"`
	Active          bool       `json:"active"`
	Description     *string    `json:"description,omitempty"`
	LastTriggeredAt *time.Time `json:"lastTriggeredAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// SubscribedTo reports whether the subscription's event set contains name.
func (s *WebhookSubscription) SubscribedTo(name string) bool {
	for _, e := range s.Events {
		if e == name {
			return true
		}
	}
	return false
}

type CreateWebhookSubscriptionParams struct {
	URL         string
	Events      []string
	Secret      string
	Description *string
}

type WebhookSubscriptionPatch struct {
	URL         *string
	Events      []string
	Active      *bool
	Description *string
}

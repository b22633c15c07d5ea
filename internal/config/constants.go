package config

import "time"

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Webhook delivery
const (
	WebhookDeliveryTimeout = 30 * time.Second
)

// Commerce platform client
const CommerceRequestTimeout = 15 * time.Second

// AI collaborator
const (
	AIRequestTimeout = 45 * time.Second
	AIHistoryDepth   = 10
	AICatalogLimit   = 25
)

// Rate limit window for the public chat endpoint
const ChatRateLimitWindow = time.Minute

package model

type ConversationStatus string

const (
	ConversationStatusActive    ConversationStatus = "active"
	ConversationStatusCompleted ConversationStatus = "completed"
	ConversationStatusEscalated ConversationStatus = "escalated"
)

// ValidConversationStatus reports whether s is one of the known statuses.
// Transitions between statuses are intentionally unconstrained.
func ValidConversationStatus(s ConversationStatus) bool {
	switch s {
	case ConversationStatusActive, ConversationStatusCompleted, ConversationStatusEscalated:
		return true
	}
	return false
}

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

type RecommendationType string

const (
	RecommendationTypeCrossSell RecommendationType = "cross_sell"
	RecommendationTypeUpsell    RecommendationType = "upsell"
	RecommendationTypePrimary   RecommendationType = "primary"
)

func ValidRecommendationType(t RecommendationType) bool {
	switch t {
	case RecommendationTypeCrossSell, RecommendationTypeUpsell, RecommendationTypePrimary:
		return true
	}
	return false
}

// Default order fields applied by the store when a draft leaves them empty.
const (
	DefaultOrderCurrency = "USD"
	DefaultOrderSource   = "ai_chatbot"
	DefaultOrderStatus   = "pending"
)

package model

import "time"

type Recommendation struct {
	ID             int64              `json:"id"`
	ConversationID int64              `json:"conversationId"`
	ProductID      int64              `json:"productId"`
	Type           RecommendationType `json:"type"`
	Confidence     float64            `json:"confidence"`
	Reason         string             `json:"reason"`
	Presented      bool               `json:"presented"`
	Accepted       bool               `json:"accepted"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type CreateRecommendationParams struct {
	ConversationID int64
	ProductID      int64
	Type           RecommendationType
	Confidence     float64
	Reason         string
	Presented      bool
}

// TopProduct is the dashboard view of an aggregated recommendation group.
type TopProduct struct {
	Product         Product `json:"product"`
	Recommendations int     `json:"recommendations"`
	SuccessRate     float64 `json:"successRate"`
}

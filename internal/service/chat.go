// Package service holds the business logic between the HTTP handlers and
// the store. Services translate store misses into typed errors and fire the
// side effects (webhooks, dashboard events, metrics) the handlers should not
// know about.
package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vj-tring/SalesBoostAI-V1/internal/ai"
	"github.com/vj-tring/SalesBoostAI-V1/internal/config"
	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/metrics"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/sse"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
	"github.com/vj-tring/SalesBoostAI-V1/internal/webhook"
)

// Responder produces the assistant's reply for one conversation turn.
type Responder interface {
	Respond(ctx context.Context, history []model.Message, catalog []model.Product, userMessage string) (*ai.Reply, error)
}

// EventDispatcher fans an event out to webhook subscribers.
type EventDispatcher interface {
	Dispatch(event string, data any, conversationID *int64, customerID *string)
}

// ChatRequest is one inbound customer message.
type ChatRequest struct {
	SessionID    string          `json:"sessionId"`
	Message      string          `json:"message" validate:"required"`
	CustomerID   *string         `json:"customerId,omitempty"`
	CustomerName *string         `json:"customerName,omitempty"`
	Context      json.RawMessage `json:"context,omitempty"`
}

// ChatResponse is the assistant's turn as returned to the caller.
type ChatResponse struct {
	ConversationID  int64                  `json:"conversationId"`
	SessionID       string                 `json:"sessionId"`
	Reply           string                 `json:"reply"`
	Escalated       bool                   `json:"escalated"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

type ChatService struct {
	store      *store.Store
	responder  Responder
	dispatcher EventDispatcher
	broker     *sse.Broker
	metrics    *metrics.Metrics
}

func NewChatService(st *store.Store, responder Responder, dispatcher EventDispatcher, broker *sse.Broker, m *metrics.Metrics) *ChatService {
	return &ChatService{
		store:      st,
		responder:  responder,
		dispatcher: dispatcher,
		broker:     broker,
		metrics:    m,
	}
}

// HandleMessage runs one conversation turn: it records the customer message,
// asks the model for a reply, stores any product recommendations the model
// proposed, and fires the lifecycle events.
func (s *ChatService) HandleMessage(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Message == "" {
		return nil, apperrors.MissingRequired("message")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conv, created := s.store.FindOrCreateConversation(model.CreateConversationParams{
		SessionID:    sessionID,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Context:      req.Context,
	})
	if created {
		s.dispatch(webhook.EventConversationStarted, conv, &conv.ID, conv.CustomerID)
		s.publish(ctx, "conversation.started", conv)
	}

	// history is captured before the new message is stored: the model client
	// appends the current user message itself.
	history := historyOldestFirst(s.store.RecentMessages(conv.ID, config.AIHistoryDepth))

	s.store.CreateMessage(model.CreateMessageParams{
		ConversationID: conv.ID,
		Role:           model.MessageRoleUser,
		Content:        req.Message,
	})
	s.countMessage(model.MessageRoleUser)

	catalog := s.store.ListProducts(true)
	if len(catalog) > config.AICatalogLimit {
		catalog = catalog[:config.AICatalogLimit]
	}

	reply, err := s.responder.Respond(ctx, history, catalog, req.Message)
	if err != nil {
		if s.metrics != nil {
			s.metrics.Errors.WithLabelValues("ai").Inc()
		}
		return nil, err
	}

	s.store.CreateMessage(model.CreateMessageParams{
		ConversationID: conv.ID,
		Role:           model.MessageRoleAssistant,
		Content:        reply.Text,
	})
	s.countMessage(model.MessageRoleAssistant)

	recs := s.storeSuggestions(conv.ID, reply.Suggestions)

	patch := model.ConversationPatch{LastMessage: &req.Message}
	if reply.Escalate && conv.Status != model.ConversationStatusEscalated {
		escalated := model.ConversationStatusEscalated
		patch.Status = &escalated
	}
	updated := s.store.UpdateConversation(conv.ID, patch)
	if updated == nil {
		return nil, apperrors.NotFound("conversation")
	}

	if patch.Status != nil {
		s.dispatch(webhook.EventConversationEscalated, updated, &updated.ID, updated.CustomerID)
		s.publish(ctx, "conversation.escalated", updated)
	}
	s.publish(ctx, "conversation.updated", updated)

	return &ChatResponse{
		ConversationID:  updated.ID,
		SessionID:       updated.SessionID,
		Reply:           reply.Text,
		Escalated:       updated.Status == model.ConversationStatusEscalated,
		Recommendations: recs,
	}, nil
}

// storeSuggestions persists the model's proposals, dropping anything that
// references an unknown product or carries a bad type.
func (s *ChatService) storeSuggestions(conversationID int64, suggestions []ai.Suggestion) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(suggestions))
	for _, sg := range suggestions {
		if s.store.GetProduct(sg.ProductID) == nil {
			log.Warn().Int64("product_id", sg.ProductID).Msg("model suggested unknown product, dropping")
			continue
		}
		recType := model.RecommendationType(sg.Type)
		if !model.ValidRecommendationType(recType) {
			recType = model.RecommendationTypeCrossSell
		}
		confidence := sg.Confidence
		if confidence < 0 {
			confidence = 0
		} else if confidence > 1 {
			confidence = 1
		}
		rec := s.store.CreateRecommendation(model.CreateRecommendationParams{
			ConversationID: conversationID,
			ProductID:      sg.ProductID,
			Type:           recType,
			Confidence:     confidence,
			Reason:         sg.Reason,
			Presented:      true,
		})
		if rec != nil {
			recs = append(recs, *rec)
		}
	}
	return recs
}

// UpdateStatus moves a conversation through its lifecycle and fires the
// matching webhook event.
func (s *ChatService) UpdateStatus(ctx context.Context, id int64, status model.ConversationStatus) (*model.Conversation, error) {
	if !model.ValidConversationStatus(status) {
		return nil, apperrors.InvalidInput("status", "must be one of active, completed, escalated")
	}

	conv := s.store.UpdateConversation(id, model.ConversationPatch{Status: &status})
	if conv == nil {
		return nil, apperrors.NotFound("conversation")
	}

	switch status {
	case model.ConversationStatusCompleted:
		s.dispatch(webhook.EventConversationCompleted, conv, &conv.ID, conv.CustomerID)
	case model.ConversationStatusEscalated:
		s.dispatch(webhook.EventConversationEscalated, conv, &conv.ID, conv.CustomerID)
	}
	s.publish(ctx, "conversation.updated", conv)
	return conv, nil
}

// AcceptRecommendation marks a presented recommendation as taken by the
// shopper and reports it to subscribers.
func (s *ChatService) AcceptRecommendation(ctx context.Context, id int64) (*model.Recommendation, error) {
	rec := s.store.AcceptRecommendation(id)
	if rec == nil {
		return nil, apperrors.NotFound("recommendation")
	}

	s.dispatch(webhook.EventUpsellSuccess, rec, &rec.ConversationID, nil)
	s.publish(ctx, "recommendation.accepted", rec)
	return rec, nil
}

func (s *ChatService) GetConversation(id int64) (*model.Conversation, error) {
	conv := s.store.GetConversation(id)
	if conv == nil {
		return nil, apperrors.NotFound("conversation")
	}
	return conv, nil
}

func (s *ChatService) ListConversations(status *model.ConversationStatus) ([]model.Conversation, error) {
	if status != nil && !model.ValidConversationStatus(*status) {
		return nil, apperrors.InvalidInput("status", "must be one of active, completed, escalated")
	}
	return s.store.ListConversations(status), nil
}

func (s *ChatService) ListMessages(conversationID int64) ([]model.Message, error) {
	if s.store.GetConversation(conversationID) == nil {
		return nil, apperrors.NotFound("conversation")
	}
	return s.store.ListMessages(conversationID), nil
}

func (s *ChatService) ListRecommendations(conversationID int64) ([]model.Recommendation, error) {
	if s.store.GetConversation(conversationID) == nil {
		return nil, apperrors.NotFound("conversation")
	}
	return s.store.ListRecommendations(conversationID), nil
}

func (s *ChatService) dispatch(event string, data any, conversationID *int64, customerID *string) {
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(event, data, conversationID, customerID)
	}
}

func (s *ChatService) publish(ctx context.Context, eventType string, data any) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, eventType, data); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish dashboard event")
	}
}

func (s *ChatService) countMessage(role model.MessageRole) {
	if s.metrics != nil {
		s.metrics.ChatMessages.WithLabelValues(string(role)).Inc()
	}
}

// historyOldestFirst reverses RecentMessages output into model order.
func historyOldestFirst(recent []model.Message) []model.Message {
	out := make([]model.Message, len(recent))
	for i, m := range recent {
		out[len(recent)-1-i] = m
	}
	return out
}

package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/sse"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
	"github.com/vj-tring/SalesBoostAI-V1/internal/webhook"
)

// OrderForwarder pushes recorded orders to the commerce platform.
type OrderForwarder interface {
	PushOrder(ctx context.Context, order model.Order) error
	Enabled() bool
}

type OrderService struct {
	store      *store.Store
	forwarder  OrderForwarder
	dispatcher EventDispatcher
	broker     *sse.Broker
}

func NewOrderService(st *store.Store, forwarder OrderForwarder, dispatcher EventDispatcher, broker *sse.Broker) *OrderService {
	return &OrderService{store: st, forwarder: forwarder, dispatcher: dispatcher, broker: broker}
}

// Create records an order, announces it to webhook subscribers, and forwards
// it to the commerce platform when one is configured. Forwarding is best
// effort: a platform failure never fails the order.
func (s *OrderService) Create(ctx context.Context, params model.CreateOrderParams) (*model.Order, error) {
	if params.CustomerEmail == "" {
		return nil, apperrors.MissingRequired("customerEmail")
	}
	if params.Total.IsNegative() {
		return nil, apperrors.InvalidInput("total", "must not be negative")
	}
	if params.ConversationID != nil && s.store.GetConversation(*params.ConversationID) == nil {
		return nil, apperrors.NotFound("conversation")
	}
	if params.ExternalID != nil && s.store.GetOrderByExternalID(*params.ExternalID) != nil {
		return nil, apperrors.AlreadyExists("order")
	}

	order := s.store.CreateOrder(params)

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(webhook.EventOrderCreated, order, order.ConversationID, order.CustomerID)
	}
	if s.broker != nil {
		if err := s.broker.Publish(ctx, "order.created", order); err != nil {
			log.Warn().Err(err).Msg("failed to publish dashboard event")
		}
	}
	if s.forwarder != nil && s.forwarder.Enabled() {
		if err := s.forwarder.PushOrder(ctx, *order); err != nil {
			log.Warn().Err(err).Int64("order_id", order.ID).Msg("failed to forward order to commerce platform")
		}
	}
	return order, nil
}

func (s *OrderService) Get(id int64) (*model.Order, error) {
	o := s.store.GetOrder(id)
	if o == nil {
		return nil, apperrors.NotFound("order")
	}
	return o, nil
}

func (s *OrderService) Update(id int64, patch model.OrderPatch) (*model.Order, error) {
	o := s.store.UpdateOrder(id, patch)
	if o == nil {
		return nil, apperrors.NotFound("order")
	}
	return o, nil
}

func (s *OrderService) List() []model.Order {
	return s.store.ListOrders()
}

package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
	"github.com/vj-tring/SalesBoostAI-V1/internal/util"
	"github.com/vj-tring/SalesBoostAI-V1/internal/webhook"
)

// SubscriptionTester performs a synchronous test delivery to one target.
type SubscriptionTester interface {
	Test(ctx context.Context, subscriptionID int64) (*webhook.Delivery, error)
}

// CreateSubscriptionRequest registers a new webhook target.
type CreateSubscriptionRequest struct {
	URL         string   `json:"url" validate:"required,url"`
	Events      []string `json:"events" validate:"required,min=1"`
	Description *string  `json:"description,omitempty"`
}

// UpdateSubscriptionRequest is a partial subscription update.
type UpdateSubscriptionRequest struct {
	URL         *string  `json:"url,omitempty" validate:"omitempty,url"`
	Events      []string `json:"events,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type WebhookService struct {
	store    *store.Store
	tester   SubscriptionTester
	validate *validator.Validate
}

func NewWebhookService(st *store.Store, tester SubscriptionTester) *WebhookService {
	return &WebhookService{
		store:    st,
		tester:   tester,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create registers a subscription and generates its signing secret. The
// secret is returned in full exactly once, here.
func (s *WebhookService) Create(req CreateSubscriptionRequest) (*model.WebhookSubscription, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}
	if err := validateEvents(req.Events); err != nil {
		return nil, err
	}

	secret, err := util.NewWebhookSecret()
	if err != nil {
		return nil, apperrors.Internal("failed to generate webhook secret").WithCause(err)
	}

	return s.store.CreateWebhookSubscription(model.CreateWebhookSubscriptionParams{
		URL:         req.URL,
		Events:      req.Events,
		Secret:      secret,
		Description: req.Description,
	}), nil
}

func (s *WebhookService) Get(id int64) (*model.WebhookSubscription, error) {
	sub := s.store.GetWebhookSubscription(id)
	if sub == nil {
		return nil, apperrors.NotFound("webhook subscription")
	}
	return sub, nil
}

func (s *WebhookService) Update(id int64, req UpdateSubscriptionRequest) (*model.WebhookSubscription, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}
	if req.Events != nil {
		if err := validateEvents(req.Events); err != nil {
			return nil, err
		}
	}

	sub := s.store.UpdateWebhookSubscription(id, model.WebhookSubscriptionPatch{
		URL:         req.URL,
		Events:      req.Events,
		Active:      req.Active,
		Description: req.Description,
	})
	if sub == nil {
		return nil, apperrors.NotFound("webhook subscription")
	}
	return sub, nil
}

func (s *WebhookService) Delete(id int64) error {
	if !s.store.DeleteWebhookSubscription(id) {
		return apperrors.NotFound("webhook subscription")
	}
	return nil
}

// List returns all subscriptions with their secrets masked.
func (s *WebhookService) List() []model.WebhookSubscription {
	subs := s.store.ListWebhookSubscriptions()
	for i := range subs {
		subs[i].Secret = util.MaskSecret(subs[i].Secret)
	}
	return subs
}

// Test delivers a webhook.test event to the subscription synchronously.
func (s *WebhookService) Test(ctx context.Context, id int64) (*webhook.Delivery, error) {
	return s.tester.Test(ctx, id)
}

func validateEvents(events []string) error {
	if len(events) == 0 {
		return apperrors.MissingRequired("events")
	}
	for _, e := range events {
		if !webhook.KnownEvent(e) {
			return apperrors.InvalidInput("events", "unknown event "+e)
		}
	}
	return nil
}

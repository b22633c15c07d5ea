package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vj-tring/SalesBoostAI-V1/internal/service"
	"github.com/vj-tring/SalesBoostAI-V1/internal/util"
	"github.com/vj-tring/SalesBoostAI-V1/internal/webhook"
)

// WebhooksHandler manages outbound webhook subscriptions.
type WebhooksHandler struct {
	webhookService *service.WebhookService
}

func NewWebhooksHandler(webhookService *service.WebhookService) *WebhooksHandler {
	return &WebhooksHandler{webhookService: webhookService}
}

func (h *WebhooksHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/events", h.Events)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/test", h.Test)
	return r
}

// Create registers a subscription. This is the only response that carries
// the signing secret in full.
func (h *WebhooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSubscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.webhookService.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *WebhooksHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"webhooks": h.webhookService.List()})
}

func (h *WebhooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.webhookService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	sub.Secret = util.MaskSecret(sub.Secret)
	writeJSON(w, http.StatusOK, sub)
}

func (h *WebhooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req service.UpdateSubscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.webhookService.Update(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	sub.Secret = util.MaskSecret(sub.Secret)
	writeJSON(w, http.StatusOK, sub)
}

func (h *WebhooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.webhookService.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Test fires a synchronous webhook.test delivery at the subscription.
func (h *WebhooksHandler) Test(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	delivery, err := h.webhookService.Test(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "delivery succeeded"
	if !delivery.Success {
		message = "delivery failed: " + delivery.Error
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    delivery.Success,
		"statusCode": delivery.StatusCode,
		"message":    message,
	})
}

// Events lists the event names a subscription may declare.
func (h *WebhooksHandler) Events(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"events": webhook.KnownEvents})
}

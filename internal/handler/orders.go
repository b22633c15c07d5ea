package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/service"
)

type OrdersHandler struct {
	orderService *service.OrderService
}

func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orderService: orderService}
}

func (h *OrdersHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	return r
}

func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExternalID     *string         `json:"externalId"`
		ConversationID *int64          `json:"conversationId"`
		CustomerID     *string         `json:"customerId"`
		CustomerEmail  string          `json:"customerEmail"`
		Status         string          `json:"status"`
		Total          string          `json:"total"`
		Currency       string          `json:"currency"`
		Items          json.RawMessage `json:"items"`
		Source         string          `json:"source"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		writeError(w, apperrors.InvalidInput("total", "must be a decimal string"))
		return
	}

	order, err := h.orderService.Create(r.Context(), model.CreateOrderParams{
		ExternalID:     req.ExternalID,
		ConversationID: req.ConversationID,
		CustomerID:     req.CustomerID,
		CustomerEmail:  req.CustomerEmail,
		Status:         req.Status,
		Total:          total,
		Currency:       req.Currency,
		Items:          req.Items,
		Source:         req.Source,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orderService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Status *string         `json:"status"`
		Total  *string         `json:"total"`
		Items  json.RawMessage `json:"items"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	patch := model.OrderPatch{Status: req.Status, Items: req.Items}
	if req.Total != nil {
		total, err := decimal.NewFromString(*req.Total)
		if err != nil {
			writeError(w, apperrors.InvalidInput("total", "must be a decimal string"))
			return
		}
		patch.Total = &total
	}

	order, err := h.orderService.Update(id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"orders": h.orderService.List()})
}

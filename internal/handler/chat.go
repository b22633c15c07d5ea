package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/service"
)

// ChatHandler serves the customer-facing chat endpoint plus the signed
// inbound webhook variant used by external chat platforms.
type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Send)
	return r
}

// Send handles one customer message and returns the assistant's reply.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Message == "" {
		writeError(w, apperrors.MissingRequired("message"))
		return
	}

	resp, err := h.chatService.HandleMessage(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// inboundChatRequest is the payload relayed by external chat platforms.
// Their wire format is snake_case, unlike the first-party API.
type inboundChatRequest struct {
	SessionID    string          `json:"session_id"`
	Message      string          `json:"message"`
	CustomerID   *string         `json:"customer_id,omitempty"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Context      json.RawMessage `json:"context,omitempty"`
}

// Inbound handles a signed chat message relayed by an external platform.
// Signature verification runs in middleware before this handler; the
// platform must supply an explicit session id so turns stay correlated.
func (h *ChatHandler) Inbound(w http.ResponseWriter, r *http.Request) {
	var req inboundChatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Message == "" {
		writeError(w, apperrors.MissingRequired("message"))
		return
	}
	if req.SessionID == "" {
		writeError(w, apperrors.MissingRequired("session_id"))
		return
	}

	resp, err := h.chatService.HandleMessage(r.Context(), service.ChatRequest{
		SessionID:    req.SessionID,
		Message:      req.Message,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Context:      req.Context,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/service"
)

type ConversationsHandler struct {
	chatService *service.ChatService
}

func NewConversationsHandler(chatService *service.ChatService) *ConversationsHandler {
	return &ConversationsHandler{chatService: chatService}
}

func (h *ConversationsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/messages", h.Messages)
	r.Get("/{id}/recommendations", h.Recommendations)
	r.Patch("/{id}/status", h.UpdateStatus)
	return r
}

func (h *ConversationsHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *model.ConversationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := model.ConversationStatus(raw)
		status = &s
	}

	conversations, err := h.chatService.ListConversations(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversations": conversations})
}

// Get returns the conversation with its full transcript and recommendations,
// the dashboard's detail view.
func (h *ConversationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	conv, err := h.chatService.GetConversation(id)
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := h.chatService.ListMessages(id)
	if err != nil {
		writeError(w, err)
		return
	}
	recommendations, err := h.chatService.ListRecommendations(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"conversation":    conv,
		"messages":        messages,
		"recommendations": recommendations,
	})
}

func (h *ConversationsHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := h.chatService.ListMessages(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *ConversationsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	recommendations, err := h.chatService.ListRecommendations(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recommendations})
}

func (h *ConversationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Status model.ConversationStatus `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	conv, err := h.chatService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vj-tring/SalesBoostAI-V1/internal/service"
)

type RecommendationsHandler struct {
	chatService *service.ChatService
}

func NewRecommendationsHandler(chatService *service.ChatService) *RecommendationsHandler {
	return &RecommendationsHandler{chatService: chatService}
}

func (h *RecommendationsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/{id}/accept", h.Accept)
	return r
}

// Accept marks a presented recommendation as taken by the shopper.
func (h *RecommendationsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.chatService.AcceptRecommendation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

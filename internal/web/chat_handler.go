package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

type ChatHandler struct{}

func NewChatHandler() *ChatHandler {
	return &ChatHandler{}
}

type chatMessageDTO struct {
	Message string `json:"message"`
}

type chatStateDTO struct {
	Messages []domain.ChatMessage `json:"messages"`
	Error    string               `json:"error,omitempty"`
}

// POST /chat_messages
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	var req chatMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "empty_message", "message is required")
		return
	}

	if _, err := v.Chat.Send(r.Context(), req.Message); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, chatStateDTO{Messages: v.Chat.Messages()})
}

// GET /api/continue_last_conversation
func (h *ChatHandler) ContinueLastConversation(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	if err := v.Chat.ContinueLastConversation(r.Context()); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, chatStateDTO{Messages: v.Chat.Messages()})
}

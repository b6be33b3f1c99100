package backend

import (
	"context"
	"net/http"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

type chatRequest struct {
	Message string `json:"message"`
}

// SendChatMessage posts one support message to POST /chat_messages and
// returns the assistant's reply.
func (c *Client) SendChatMessage(ctx context.Context, text string) (string, error) {
	var resp struct {
		AIResponse string `json:"ai_response"`
	}
	if err := c.do(ctx, http.MethodPost, "/chat_messages", chatRequest{Message: text}, &resp, "Network response was not ok"); err != nil {
		return "", err
	}
	return resp.AIResponse, nil
}

// ContinueLastConversation loads the previous session's message history from
// GET /api/continue_last_conversation.
func (c *Client) ContinueLastConversation(ctx context.Context) ([]domain.ChatMessage, error) {
	var resp struct {
		Messages []domain.ChatMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/continue_last_conversation", nil, &resp, "Failed to load conversation"); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

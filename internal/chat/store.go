package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/backend"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

const genericChatErr = "Network response was not ok"

// ChatAPI is the slice of the backend the support widget talks to. Satisfied
// by *backend.Client.
type ChatAPI interface {
	SendChatMessage(ctx context.Context, text string) (string, error)
	ContinueLastConversation(ctx context.Context) ([]domain.ChatMessage, error)
}

// Store holds the support widget's message list. The append contract: a
// successful send appends the user's message followed by the assistant's
// reply, each taking the next sequential id. History is scoped to the
// authenticated identity, so the shell registers Clear as a session logout
// hook.
type Store struct {
	api ChatAPI
	log *slog.Logger

	mu        sync.Mutex
	messages  []domain.ChatMessage
	loading   bool
	lastError string
}

func NewStore(api ChatAPI, log *slog.Logger) *Store {
	return &Store{api: api, log: log}
}

// Send posts one message to the backend and, on success, appends both sides
// of the exchange. On failure nothing is appended and the error message is
// recorded.
func (s *Store) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	reply, err := s.api.SendChatMessage(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		msg := genericChatErr
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		s.lastError = msg
		return "", err
	}

	s.append(domain.SenderUser, text)
	s.append(domain.SenderAI, reply)
	return reply, nil
}

// ContinueLastConversation replaces the message list with the previous
// session's history.
func (s *Store) ContinueLastConversation(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	messages, err := s.api.ContinueLastConversation(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastError = "Failed to load conversation"
		return err
	}

	s.messages = messages
	return nil
}

// append assigns the next sequential id. Callers hold s.mu.
func (s *Store) append(sender domain.Sender, text string) {
	s.messages = append(s.messages, domain.ChatMessage{
		ID:     len(s.messages) + 1,
		Sender: sender,
		Text:   text,
	})
}

// Messages returns a copy of the current list.
func (s *Store) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear empties the message list. Wired to session logout by the shell.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.lastError = ""
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

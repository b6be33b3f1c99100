package chat

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/backend"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

type mockChatAPI struct {
	reply   string
	history []domain.ChatMessage
	err     error
}

func (m *mockChatAPI) SendChatMessage(context.Context, string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockChatAPI) ContinueLastConversation(context.Context) ([]domain.ChatMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.history, nil
}

func newTestStore(api ChatAPI) *Store {
	return NewStore(api, slog.New(slog.DiscardHandler))
}

func TestSend_AppendsBothSidesInOrder(t *testing.T) {
	s := newTestStore(&mockChatAPI{reply: "Sure, I can help with that."})

	reply, err := s.Send(context.Background(), "Where is my order?")

	require.NoError(t, err)
	assert.Equal(t, "Sure, I can help with that.", reply)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.ChatMessage{ID: 1, Sender: domain.SenderUser, Text: "Where is my order?"}, msgs[0])
	assert.Equal(t, domain.ChatMessage{ID: 2, Sender: domain.SenderAI, Text: "Sure, I can help with that."}, msgs[1])
}

func TestSend_SequentialIDsAcrossExchanges(t *testing.T) {
	s := newTestStore(&mockChatAPI{reply: "ok"})

	_, _ = s.Send(context.Background(), "first")
	_, _ = s.Send(context.Background(), "second")

	msgs := s.Messages()
	require.Len(t, msgs, 4)
	for i, m := range msgs {
		assert.Equal(t, i+1, m.ID)
	}
}

func TestSend_FailureAppendsNothing(t *testing.T) {
	s := newTestStore(&mockChatAPI{err: &backend.APIError{Status: 500, Message: "assistant unavailable"}})

	_, err := s.Send(context.Background(), "hello")

	require.Error(t, err)
	assert.Empty(t, s.Messages())
	assert.Equal(t, "assistant unavailable", s.LastError())
	assert.False(t, s.IsLoading())
}

func TestSend_TransportErrorGenericMessage(t *testing.T) {
	s := newTestStore(&mockChatAPI{err: errors.New("connection reset")})

	_, err := s.Send(context.Background(), "hello")

	require.Error(t, err)
	assert.Equal(t, genericChatErr, s.LastError())
}

func TestContinueLastConversation_ReplacesList(t *testing.T) {
	history := []domain.ChatMessage{
		{ID: 1, Sender: domain.SenderUser, Text: "hi"},
		{ID: 2, Sender: domain.SenderAI, Text: "hello"},
	}
	s := newTestStore(&mockChatAPI{history: history})

	require.NoError(t, s.ContinueLastConversation(context.Background()))
	assert.Equal(t, history, s.Messages())
}

func TestClear(t *testing.T) {
	s := newTestStore(&mockChatAPI{reply: "ok"})
	_, _ = s.Send(context.Background(), "hello")

	s.Clear()

	assert.Empty(t, s.Messages())
	assert.Empty(t, s.LastError())
}

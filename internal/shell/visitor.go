package shell

import (
	"log/slog"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/backend"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/cart"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/chat"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/checkout"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/session"
)

// Visitor is one browser tab's worth of state: its own cart, session and
// chat stores plus a dedicated backend client whose cookie jar carries that
// visitor's server-side session. Stores are wired together here and nowhere
// else: logging out purges the chat history through the session store's
// logout hook.
type Visitor struct {
	ID       string
	Cart     *cart.Store
	Session  *session.Store
	Chat     *chat.Store
	Checkout *checkout.Service
	Backend  *backend.Client
}

// NewVisitor composes the stores for a fresh visitor.
func NewVisitor(id string, client *backend.Client, log *slog.Logger, autoLoginOnRegister bool) *Visitor {
	log = log.With("visitor", id)

	cartStore := cart.NewStore()
	sessionStore := session.NewStore(client, log, autoLoginOnRegister)
	chatStore := chat.NewStore(client, log)

	// Chat history is scoped to the authenticated identity.
	sessionStore.OnLogout(chatStore.Clear)

	return &Visitor{
		ID:       id,
		Cart:     cartStore,
		Session:  sessionStore,
		Chat:     chatStore,
		Checkout: checkout.NewService(client, cartStore, log),
		Backend:  client,
	}
}

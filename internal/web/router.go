package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/catalog"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/shell"
)

// RouterConfig carries the knobs the router needs from the app config.
type RouterConfig struct {
	RequestTimeout time.Duration
	CookieSecret   string
	VisitorTTL     time.Duration
}

// NewRouter assembles the HTTP surface the SPA talks to. Auth and chat paths
// mirror the backend's own REST contract so the existing frontend fetch
// calls keep working unchanged.
func NewRouter(registry *shell.Registry, catalogService *catalog.Service, cfg RouterConfig) http.Handler {
	visitors := NewVisitorMiddleware(registry, cfg.CookieSecret, cfg.VisitorTTL)

	authHandler := NewAuthHandler()
	cartHandler := NewCartHandler(catalogService)
	productHandler := NewProductHandler(catalogService)
	checkoutHandler := NewCheckoutHandler()
	chatHandler := NewChatHandler()

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(visitors.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth paths, same shape as the backend contract.
	r.Post("/login", authHandler.Login)
	r.Get("/check_session", authHandler.CheckSession)
	r.Post("/logout", authHandler.Logout)
	r.Post("/user_auth", authHandler.Register)
	r.Patch("/user_auth", authHandler.UpdatePassword)
	r.Delete("/user_auth", authHandler.DeleteAccount)

	// Support chat.
	r.Post("/chat_messages", chatHandler.Send)

	r.Route("/api", func(r chi.Router) {
		r.Get("/product", productHandler.List)
		r.Get("/product/{id}", productHandler.Get)

		r.Get("/continue_last_conversation", chatHandler.ContinueLastConversation)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)
	})

	return otelhttp.NewHandler(r, "storefront")
}

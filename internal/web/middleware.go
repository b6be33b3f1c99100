package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/shell"
)

type ctxKey int

const visitorKey ctxKey = iota

const visitorCookie = "storefront_visitor"

// VisitorMiddleware resolves the per-tab state for each request. The visitor
// id travels in a signed JWT cookie; an absent, invalid or expired cookie
// gets a brand-new visitor, so a fresh application load always starts with
// empty stores.
type VisitorMiddleware struct {
	registry *shell.Registry
	secret   []byte
	ttl      time.Duration
}

func NewVisitorMiddleware(registry *shell.Registry, secret string, ttl time.Duration) *VisitorMiddleware {
	return &VisitorMiddleware{registry: registry, secret: []byte(secret), ttl: ttl}
}

func (m *VisitorMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitor, fresh := m.resolve(r)
		if fresh {
			m.setCookie(w, visitor.ID)
		}

		ctx := context.WithValue(r.Context(), visitorKey, visitor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *VisitorMiddleware) resolve(r *http.Request) (v *shell.Visitor, fresh bool) {
	cookie, err := r.Cookie(visitorCookie)
	if err == nil {
		if id, err := m.parseToken(cookie.Value); err == nil {
			if visitor, ok := m.registry.Get(id); ok {
				return visitor, false
			}
		}
	}
	return m.registry.Create(), true
}

func (m *VisitorMiddleware) parseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	return token.Claims.GetSubject()
}

func (m *VisitorMiddleware) setCookie(w http.ResponseWriter, visitorID string) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(m.ttl),
	})
}

// visitorFromContext returns the visitor placed by VisitorMiddleware.
func visitorFromContext(ctx context.Context) *shell.Visitor {
	v, _ := ctx.Value(visitorKey).(*shell.Visitor)
	return v
}

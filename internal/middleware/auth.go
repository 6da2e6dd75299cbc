package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/studytube/backend/internal/auth"
)

const identityKey contextKey = "identity"

// TokenValidator validates an access token and returns the identity it carries
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Identity, error)
}

// AuthMiddleware validates the access token and stores the caller identity in the context
//
// The token is read from the Authorization header ("Bearer <token>") or the access_token cookie.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "authentication required")
				return
			}

			identity, err := validator.ValidateAccessToken(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the caller identity from context
func GetIdentity(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}

// GetOwnerID retrieves the caller's owner id from context
func GetOwnerID(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok || identity.OwnerID == "" {
		return "", false
	}
	return identity.OwnerID, true
}

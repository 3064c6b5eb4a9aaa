package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrSessionExpired indicates invalid or missing credentials; callers should
// re-authenticate rather than retry.
var ErrSessionExpired = errors.New("session expired")

type actorKey struct{}

// ActorResolver resolves an actor ID from a bearer token.
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (int64, error)
}

// ActorFromContext returns the acting actor ID from context, if present.
func ActorFromContext(ctx context.Context) (int64, bool) {
	actorID, ok := ctx.Value(actorKey{}).(int64)
	return actorID, ok
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "SESSION_EXPIRED", "missing bearer token")
				return
			}

			actorID, err := resolver.ResolveActor(r.Context(), token)
			if err != nil || actorID == 0 {
				writeError(w, http.StatusUnauthorized, "SESSION_EXPIRED", "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticActorMiddleware injects a fixed actor when auth is disabled (local dev).
func StaticActorMiddleware(actorID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), actorKey{}, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package mcp

import (
	"context"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const actorIDKey contextKey = iota

// getActorID extracts the acting actor ID from context.
func getActorID(ctx context.Context) int64 {
	v, _ := ctx.Value(actorIDKey).(int64)
	return v
}

// ActorResolver resolves an actor ID from a bearer token.
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (int64, error)
}

func sessionExpired(reason string) *APIError {
	return &APIError{
		Code:         "SESSION_EXPIRED",
		Message:      "session expired: " + reason,
		RecoveryHint: "Re-authenticate and retry",
	}
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver ActorResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, sessionExpired("missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, sessionExpired("missing bearer token")
			}

			actorID, err := resolver.ResolveActor(ctx, token)
			if err != nil || actorID == 0 {
				return nil, sessionExpired("invalid bearer token")
			}

			ctx = context.WithValue(ctx, actorIDKey, actorID)
			return next(ctx, method, req)
		}
	}
}

// staticActorMiddleware injects a fixed actor when auth is disabled.
func staticActorMiddleware(actorID int64) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx = context.WithValue(ctx, actorIDKey, actorID)
			return next(ctx, method, req)
		}
	}
}

// trafficLoggingMiddleware logs each inbound method with its latency.
func trafficLoggingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			if logger != nil {
				logger.Debug("mcp method handled",
					"method", method,
					"duration", time.Since(start),
					"error", err)
			}
			return result, err
		}
	}
}

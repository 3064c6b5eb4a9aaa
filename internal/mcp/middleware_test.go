package mcp

import (
	"context"
	"errors"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type resolverStub struct {
	actorID int64
	err     error
}

func (r resolverStub) ResolveActor(context.Context, string) (int64, error) {
	return r.actorID, r.err
}

func callRequest(header http.Header) sdkmcp.Request {
	var extra *sdkmcp.RequestExtra
	if header != nil {
		extra = &sdkmcp.RequestExtra{Header: header}
	}
	return &sdkmcp.CallToolRequest{Extra: extra}
}

func bearerHeader(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	next := func(context.Context, string, sdkmcp.Request) (sdkmcp.Result, error) {
		t.Fatal("handler reached without credentials")
		return nil, nil
	}

	handler := authMiddleware(resolverStub{})(next)
	_, err := handler(context.Background(), "tools/call", callRequest(http.Header{}))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "SESSION_EXPIRED", apiErr.Code)
}

func TestAuthMiddleware_NoHeaders(t *testing.T) {
	next := func(context.Context, string, sdkmcp.Request) (sdkmcp.Result, error) {
		t.Fatal("handler reached without credentials")
		return nil, nil
	}

	handler := authMiddleware(resolverStub{})(next)
	_, err := handler(context.Background(), "tools/call", callRequest(nil))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "SESSION_EXPIRED", apiErr.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	next := func(context.Context, string, sdkmcp.Request) (sdkmcp.Result, error) {
		t.Fatal("handler reached with a rejected token")
		return nil, nil
	}

	handler := authMiddleware(resolverStub{err: errors.New("unknown token")})(next)
	_, err := handler(context.Background(), "tools/call", callRequest(bearerHeader("nope")))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "SESSION_EXPIRED", apiErr.Code)
}

func TestAuthMiddleware_ResolvesActor(t *testing.T) {
	var seen int64
	next := func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		seen = getActorID(ctx)
		return nil, nil
	}

	handler := authMiddleware(resolverStub{actorID: 42})(next)
	_, err := handler(context.Background(), "tools/call", callRequest(bearerHeader("valid-token")))
	require.NoError(t, err)
	require.Equal(t, int64(42), seen)
}

func TestAuthMiddleware_SkipsProtocolMethods(t *testing.T) {
	called := false
	next := func(context.Context, string, sdkmcp.Request) (sdkmcp.Result, error) {
		called = true
		return nil, nil
	}

	handler := authMiddleware(resolverStub{})(next)
	_, err := handler(context.Background(), "initialize", callRequest(nil))
	require.NoError(t, err)
	require.True(t, called)
}

func TestStaticActorMiddleware(t *testing.T) {
	var seen int64
	next := func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		seen = getActorID(ctx)
		return nil, nil
	}

	handler := staticActorMiddleware(7)(next)
	_, err := handler(context.Background(), "tools/call", callRequest(nil))
	require.NoError(t, err)
	require.Equal(t, int64(7), seen)
}

package testserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/domain/ticket"
	"github.com/campusware/peerlink/internal/httpapi"
	"github.com/campusware/peerlink/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// TestServer is an in-process stack over an in-memory database.
type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	Engagement *engagement.Service
	Tickets    *ticket.Service
}

// staticRanker serves a fixed candidate list, standing in for the remote ranker.
type staticRanker struct {
	scores []candidate.Score
	err    error
}

func (r *staticRanker) Rank(_ context.Context, _ int64, _ request.Kind, limit int) ([]candidate.Score, error) {
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.scores) {
		return r.scores[:limit], nil
	}
	return r.scores, nil
}

// Option adjusts the test stack before it is assembled.
type Option func(*options)

type options struct {
	ranker candidate.Ranker
}

// WithRanker substitutes the candidate ranker.
func WithRanker(r candidate.Ranker) Option {
	return func(o *options) { o.ranker = r }
}

// WithRankedCandidates seeds a static ranker with fixed scores.
func WithRankedCandidates(scores ...candidate.Score) Option {
	return WithRanker(&staticRanker{scores: scores})
}

// New builds the full service stack over in-memory SQLite plus an HTTP server.
func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.ranker == nil {
		o.ranker = &staticRanker{}
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	requestRepo := sqlite.NewRequestRepository(db)
	relationshipRepo := sqlite.NewRelationshipRepository(db)
	ticketRepo := sqlite.NewTicketRepository(db)
	actorRepo := sqlite.NewActorRepository(db)

	relationshipSvc := relationship.NewService(relationshipRepo, nil)
	requestSvc := request.NewService(requestRepo, relationshipSvc, nil)
	ticketSvc := ticket.NewService(ticketRepo, nil)
	engagementSvc := engagement.NewService(o.ranker, requestSvc, relationshipSvc, nil)

	resolver := &tokenResolver{actors: actorRepo}
	router := httpapi.NewRouter(engagementSvc, ticketSvc, httpapi.AuthMiddleware(resolver))
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:     server,
		DB:         db,
		Engagement: engagementSvc,
		Tickets:    ticketSvc,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddActor registers an actor row so foreign keys hold.
func (ts *TestServer) AddActor(t *testing.T, actorID int64, name string) {
	t.Helper()
	_, err := ts.DB.Exec(`INSERT INTO actors (id, display_name) VALUES (?, ?)`, actorID, name)
	require.NoError(t, err)
}

// AddToken issues a bearer token for an actor.
func (ts *TestServer) AddToken(t *testing.T, actorID int64, token string) {
	t.Helper()
	_, err := ts.DB.Exec(
		`INSERT INTO api_tokens (token_hash, actor_id, description) VALUES (?, ?, ?)`,
		hashToken(token), actorID, "test token")
	require.NoError(t, err)
}

type tokenResolver struct {
	actors *sqlite.ActorRepository
}

func (r *tokenResolver) ResolveActor(ctx context.Context, token string) (int64, error) {
	actorID, err := r.actors.ResolveToken(ctx, hashToken(token))
	if err != nil {
		return 0, httpapi.ErrSessionExpired
	}
	return actorID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

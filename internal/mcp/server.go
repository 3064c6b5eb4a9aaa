package mcp

import (
	"context"
	"log/slog"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/domain/ticket"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// EngagementService defines the facade operations exposed as MCP tools.
type EngagementService interface {
	ListRankedCandidates(ctx context.Context, actorID int64, kind request.Kind, limit int) ([]candidate.Ranked, error)
	SendEngagementRequest(ctx context.Context, actorID int64, kind request.Kind, candidateID int64, message string) (*request.Request, *engagement.View, error)
	RespondToRequest(ctx context.Context, actorID int64, requestID string, decision engagement.Decision) (*request.Request, *engagement.View, error)
	BlockRelationship(ctx context.Context, actorID int64, relationshipID string) (*engagement.View, error)
	UnblockRelationship(ctx context.Context, actorID int64, relationshipID string) (*engagement.View, error)
	RemoveRelationship(ctx context.Context, actorID int64, relationshipID string) (*engagement.View, error)
	Overview(ctx context.Context, actorID int64) (*engagement.View, error)
}

// TicketService defines the support ticket operations exposed as MCP tools.
type TicketService interface {
	Open(ctx context.Context, requesterID, competenceID int64, competenceName string) (*ticket.SupportTicket, error)
	AssignHelper(ctx context.Context, id string, helperID int64) (*ticket.SupportTicket, error)
	Approve(ctx context.Context, id string, actingActorID int64) (*ticket.SupportTicket, error)
	Cancel(ctx context.Context, id string, actingActorID int64) (*ticket.SupportTicket, error)
	Complete(ctx context.Context, id string) (*ticket.SupportTicket, error)
	Delete(ctx context.Context, id string, actingActorID int64) error
	AddComment(ctx context.Context, ticketID string, authorID int64, content string) (*ticket.Comment, error)
	Get(ctx context.Context, id string) (*ticket.TicketDetail, error)
	ListMine(ctx context.Context, actorID int64) ([]ticket.SupportTicket, error)
	ListPending(ctx context.Context) ([]ticket.SupportTicket, error)
	ListBoard(ctx context.Context) ([]ticket.TicketDetail, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Engagement EngagementService
	Tickets    TicketService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      ActorResolver
	AuthEnabled   bool
	DefaultActor  int64
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

const serverInstructions = `PeerLink exposes a student collaboration engagement core:
ranked peer candidates, skill-swap and mentoring requests, durable
relationships, and academic support tickets with open comment threads.
Mutations are applied on the server of record and every tool answer reflects
freshly re-fetched state.`

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "peerlink",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	// Stdio mode always runs unauthenticated against the default actor.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(staticActorMiddleware(cfg.DefaultActor))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger))

	registerTools(server, cfg.Services)

	return server
}

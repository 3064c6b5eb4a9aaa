package httpapi

import (
	"context"
	"net/http"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/domain/ticket"
	"github.com/go-chi/chi/v5"
)

// EngagementService defines the facade operations exposed over REST.
type EngagementService interface {
	ListRankedCandidates(ctx context.Context, actorID int64, kind request.Kind, limit int) ([]candidate.Ranked, error)
	SendEngagementRequest(ctx context.Context, actorID int64, kind request.Kind, candidateID int64, message string) (*request.Request, *engagement.View, error)
	RespondToRequest(ctx context.Context, actorID int64, requestID string, decision engagement.Decision) (*request.Request, *engagement.View, error)
	BlockRelationship(ctx context.Context, actorID int64, relationshipID string) (*engagement.View, error)
	UnblockRelationship(ctx context.Context, actorID int64, relationshipID string) (*engagement.View, error)
	RemoveRelationship(ctx context.Context, actorID int64, relationshipID string) (*engagement.View, error)
	Overview(ctx context.Context, actorID int64) (*engagement.View, error)
}

// TicketService defines the support ticket operations exposed over REST.
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

// Server wires HTTP handlers.
type Server struct {
	engagement EngagementService
	tickets    TicketService
}

// NewRouter creates the REST router with middleware.
func NewRouter(engagementSvc EngagementService, ticketSvc TicketService, authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	srv := &Server{engagement: engagementSvc, tickets: ticketSvc}

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}

		r.Get("/recommendations/{kind}", srv.handleRecommendations)

		r.Post("/requests", srv.handleCreateRequest)
		r.Get("/requests/sent", srv.handleListSent)
		r.Get("/requests/received", srv.handleListReceived)
		r.Put("/requests/{id}/accept", srv.handleAccept)
		r.Put("/requests/{id}/reject", srv.handleReject)

		r.Get("/engagement/overview", srv.handleOverview)

		r.Get("/relationships/mentors", srv.handleListMentors)
		r.Get("/relationships/mentees", srv.handleListMentees)
		r.Get("/relationships/swap-partners", srv.handleListSwapPartners)
		r.Put("/relationships/{id}/block", srv.handleBlock)
		r.Put("/relationships/{id}/unblock", srv.handleUnblock)
		r.Delete("/relationships/{id}", srv.handleRemoveRelationship)

		r.Post("/support-tickets", srv.handleOpenTicket)
		r.Get("/support-tickets", srv.handleTicketBoard)
		r.Get("/support-tickets/mine", srv.handleMyTickets)
		r.Get("/support-tickets/pending", srv.handlePendingTickets)
		r.Get("/support-tickets/{id}", srv.handleGetTicket)
		r.Put("/support-tickets/{id}/helper", srv.handleAssignHelper)
		r.Post("/support-tickets/{id}/approve", srv.handleApproveTicket)
		r.Post("/support-tickets/{id}/cancel", srv.handleCancelTicket)
		r.Post("/support-tickets/{id}/complete", srv.handleCompleteTicket)
		r.Delete("/support-tickets/{id}", srv.handleDeleteTicket)
		r.Post("/support-tickets/{id}/comments", srv.handleAddComment)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

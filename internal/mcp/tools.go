package mcp

import (
	"context"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/domain/ticket"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type toolHandler struct {
	engagement EngagementService
	tickets    TicketService
}

// registerTools registers every engagement and support ticket tool.
func registerTools(server *sdkmcp.Server, services Services) {
	h := &toolHandler{engagement: services.Engagement, tickets: services.Tickets}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_ranked_candidates",
		Description: "List ranked peer candidates for an engagement kind, annotated with whether each was already contacted",
	}, h.listRankedCandidates)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "send_engagement_request",
		Description: "Send a skill-swap or mentoring request to a candidate with a personal message",
	}, h.sendEngagementRequest)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "respond_to_request",
		Description: "Accept or reject a pending engagement request addressed to the current student",
	}, h.respondToRequest)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "engagement_overview",
		Description: "Get the current student's full engagement state: requests, relationships and pending counts",
	}, h.engagementOverview)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "block_relationship",
		Description: "Block an active relationship",
	}, h.blockRelationship)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "unblock_relationship",
		Description: "Unblock a blocked relationship, returning it to active",
	}, h.unblockRelationship)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_relationship",
		Description: "Permanently remove a relationship",
	}, h.removeRelationship)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "open_support_ticket",
		Description: "Open a support ticket asking for help with a competence",
	}, h.openSupportTicket)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_support_ticket",
		Description: "Get a support ticket with its comment thread",
	}, h.getSupportTicket)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_support_tickets",
		Description: "List support tickets: the current student's own, all pending, or the full board",
	}, h.listSupportTickets)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "assign_ticket_helper",
		Description: "Volunteer a helper for a pending support ticket",
	}, h.assignTicketHelper)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "approve_support_ticket",
		Description: "Approve a pending support ticket, fixing its helper",
	}, h.approveSupportTicket)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cancel_support_ticket",
		Description: "Cancel a pending support ticket (requester only)",
	}, h.cancelSupportTicket)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "complete_support_ticket",
		Description: "Mark an approved support ticket as completed",
	}, h.completeSupportTicket)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_support_ticket",
		Description: "Delete a support ticket (requester only)",
	}, h.deleteSupportTicket)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_ticket_comment",
		Description: "Add a comment to a support ticket's open thread",
	}, h.addTicketComment)
}

type listCandidatesParams struct {
	Kind  string `json:"kind" jsonschema:"engagement kind: skill-swap or mentoring"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of candidates (default 10)"`
}

type listCandidatesResult struct {
	Candidates []candidate.Ranked `json:"candidates"`
}

func (h *toolHandler) listRankedCandidates(ctx context.Context, _ *sdkmcp.CallToolRequest, params listCandidatesParams) (*sdkmcp.CallToolResult, listCandidatesResult, error) {
	kind, err := request.ParseKind(params.Kind)
	if err != nil {
		return nil, listCandidatesResult{}, &APIError{Code: "INVALID_INPUT", Message: "unknown engagement kind"}
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}
	ranked, err := h.engagement.ListRankedCandidates(ctx, getActorID(ctx), kind, limit)
	if err != nil {
		return nil, listCandidatesResult{}, mapError(err)
	}
	return nil, listCandidatesResult{Candidates: ranked}, nil
}

type sendRequestParams struct {
	Kind       string `json:"kind" jsonschema:"engagement kind: skill-swap or mentoring"`
	ReceiverID int64  `json:"receiver_id" jsonschema:"candidate student ID"`
	Message    string `json:"message" jsonschema:"personal message to the candidate"`
}

type requestWithView struct {
	Request *request.Request `json:"request"`
	View    *engagement.View `json:"view"`
}

func (h *toolHandler) sendEngagementRequest(ctx context.Context, _ *sdkmcp.CallToolRequest, params sendRequestParams) (*sdkmcp.CallToolResult, requestWithView, error) {
	kind, err := request.ParseKind(params.Kind)
	if err != nil {
		return nil, requestWithView{}, &APIError{Code: "INVALID_INPUT", Message: "unknown engagement kind"}
	}
	created, view, err := h.engagement.SendEngagementRequest(ctx, getActorID(ctx), kind, params.ReceiverID, params.Message)
	if err != nil {
		return nil, requestWithView{}, mapError(err)
	}
	return nil, requestWithView{Request: created, View: view}, nil
}

type respondParams struct {
	RequestID string `json:"request_id"`
	Decision  string `json:"decision" jsonschema:"accept or reject"`
}

func (h *toolHandler) respondToRequest(ctx context.Context, _ *sdkmcp.CallToolRequest, params respondParams) (*sdkmcp.CallToolResult, requestWithView, error) {
	updated, view, err := h.engagement.RespondToRequest(ctx, getActorID(ctx), params.RequestID, engagement.Decision(params.Decision))
	if err != nil {
		return nil, requestWithView{}, mapError(err)
	}
	return nil, requestWithView{Request: updated, View: view}, nil
}

type emptyParams struct{}

func (h *toolHandler) engagementOverview(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyParams) (*sdkmcp.CallToolResult, *engagement.View, error) {
	view, err := h.engagement.Overview(ctx, getActorID(ctx))
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

type relationshipParams struct {
	RelationshipID string `json:"relationship_id"`
}

func (h *toolHandler) blockRelationship(ctx context.Context, _ *sdkmcp.CallToolRequest, params relationshipParams) (*sdkmcp.CallToolResult, *engagement.View, error) {
	view, err := h.engagement.BlockRelationship(ctx, getActorID(ctx), params.RelationshipID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

func (h *toolHandler) unblockRelationship(ctx context.Context, _ *sdkmcp.CallToolRequest, params relationshipParams) (*sdkmcp.CallToolResult, *engagement.View, error) {
	view, err := h.engagement.UnblockRelationship(ctx, getActorID(ctx), params.RelationshipID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

func (h *toolHandler) removeRelationship(ctx context.Context, _ *sdkmcp.CallToolRequest, params relationshipParams) (*sdkmcp.CallToolResult, *engagement.View, error) {
	view, err := h.engagement.RemoveRelationship(ctx, getActorID(ctx), params.RelationshipID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

type openTicketParams struct {
	CompetenceID   int64  `json:"competence_id" jsonschema:"competence the student needs help with"`
	CompetenceName string `json:"competence_name,omitempty" jsonschema:"display name of the competence"`
}

func (h *toolHandler) openSupportTicket(ctx context.Context, _ *sdkmcp.CallToolRequest, params openTicketParams) (*sdkmcp.CallToolResult, *ticket.SupportTicket, error) {
	tk, err := h.tickets.Open(ctx, getActorID(ctx), params.CompetenceID, params.CompetenceName)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, tk, nil
}

type ticketParams struct {
	TicketID string `json:"ticket_id"`
}

func (h *toolHandler) getSupportTicket(ctx context.Context, _ *sdkmcp.CallToolRequest, params ticketParams) (*sdkmcp.CallToolResult, *ticket.TicketDetail, error) {
	detail, err := h.tickets.Get(ctx, params.TicketID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, detail, nil
}

type listTicketsParams struct {
	Scope string `json:"scope,omitempty" jsonschema:"mine, pending or board (default board)"`
}

type listTicketsResult struct {
	Tickets []ticket.SupportTicket `json:"tickets,omitempty"`
	Board   []ticket.TicketDetail  `json:"board,omitempty"`
}

func (h *toolHandler) listSupportTickets(ctx context.Context, _ *sdkmcp.CallToolRequest, params listTicketsParams) (*sdkmcp.CallToolResult, listTicketsResult, error) {
	switch params.Scope {
	case "mine":
		tks, err := h.tickets.ListMine(ctx, getActorID(ctx))
		if err != nil {
			return nil, listTicketsResult{}, mapError(err)
		}
		return nil, listTicketsResult{Tickets: tks}, nil
	case "pending":
		tks, err := h.tickets.ListPending(ctx)
		if err != nil {
			return nil, listTicketsResult{}, mapError(err)
		}
		return nil, listTicketsResult{Tickets: tks}, nil
	case "", "board":
		board, err := h.tickets.ListBoard(ctx)
		if err != nil {
			return nil, listTicketsResult{}, mapError(err)
		}
		return nil, listTicketsResult{Board: board}, nil
	default:
		return nil, listTicketsResult{}, &APIError{Code: "INVALID_INPUT", Message: "scope must be mine, pending or board"}
	}
}

type assignHelperParams struct {
	TicketID string `json:"ticket_id"`
	HelperID int64  `json:"helper_id"`
}

func (h *toolHandler) assignTicketHelper(ctx context.Context, _ *sdkmcp.CallToolRequest, params assignHelperParams) (*sdkmcp.CallToolResult, *ticket.SupportTicket, error) {
	tk, err := h.tickets.AssignHelper(ctx, params.TicketID, params.HelperID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, tk, nil
}

func (h *toolHandler) approveSupportTicket(ctx context.Context, _ *sdkmcp.CallToolRequest, params ticketParams) (*sdkmcp.CallToolResult, *ticket.SupportTicket, error) {
	tk, err := h.tickets.Approve(ctx, params.TicketID, getActorID(ctx))
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, tk, nil
}

func (h *toolHandler) cancelSupportTicket(ctx context.Context, _ *sdkmcp.CallToolRequest, params ticketParams) (*sdkmcp.CallToolResult, *ticket.SupportTicket, error) {
	tk, err := h.tickets.Cancel(ctx, params.TicketID, getActorID(ctx))
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, tk, nil
}

func (h *toolHandler) completeSupportTicket(ctx context.Context, _ *sdkmcp.CallToolRequest, params ticketParams) (*sdkmcp.CallToolResult, *ticket.SupportTicket, error) {
	tk, err := h.tickets.Complete(ctx, params.TicketID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, tk, nil
}

type deleteTicketResult struct {
	Deleted bool `json:"deleted"`
}

func (h *toolHandler) deleteSupportTicket(ctx context.Context, _ *sdkmcp.CallToolRequest, params ticketParams) (*sdkmcp.CallToolResult, deleteTicketResult, error) {
	if err := h.tickets.Delete(ctx, params.TicketID, getActorID(ctx)); err != nil {
		return nil, deleteTicketResult{}, mapError(err)
	}
	return nil, deleteTicketResult{Deleted: true}, nil
}

type addCommentParams struct {
	TicketID string `json:"ticket_id"`
	Content  string `json:"content"`
}

func (h *toolHandler) addTicketComment(ctx context.Context, _ *sdkmcp.CallToolRequest, params addCommentParams) (*sdkmcp.CallToolResult, *ticket.Comment, error) {
	cm, err := h.tickets.AddComment(ctx, params.TicketID, getActorID(ctx), params.Content)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, cm, nil
}

package mocks

import (
	"context"

	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/domain/ticket"
	"github.com/stretchr/testify/mock"
)

// RequestRepository is a mock for request.Repository.
type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RequestRepository) Get(ctx context.Context, id string) (*request.Request, error) {
	args := m.Called(ctx, id)
	if req, ok := args.Get(0).(*request.Request); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequestRepository) UpdateStatus(ctx context.Context, id string, from, to request.Status) (*request.Request, error) {
	args := m.Called(ctx, id, from, to)
	if req, ok := args.Get(0).(*request.Request); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequestRepository) ListSent(ctx context.Context, senderID int64) ([]request.Request, error) {
	args := m.Called(ctx, senderID)
	if list, ok := args.Get(0).([]request.Request); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequestRepository) ListReceived(ctx context.Context, receiverID int64) ([]request.Request, error) {
	args := m.Called(ctx, receiverID)
	if list, ok := args.Get(0).([]request.Request); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RelationshipRepository is a mock for relationship.Repository.
type RelationshipRepository struct {
	mock.Mock
}

func (m *RelationshipRepository) Create(ctx context.Context, rel *relationship.Relationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *RelationshipRepository) Get(ctx context.Context, id string) (*relationship.Relationship, error) {
	args := m.Called(ctx, id)
	if rel, ok := args.Get(0).(*relationship.Relationship); ok {
		return rel, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RelationshipRepository) UpdateStatus(ctx context.Context, id string, from, to relationship.Status) (*relationship.Relationship, error) {
	args := m.Called(ctx, id, from, to)
	if rel, ok := args.Get(0).(*relationship.Relationship); ok {
		return rel, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RelationshipRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RelationshipRepository) ListByInitiator(ctx context.Context, kind string, initiatorID int64) ([]relationship.Relationship, error) {
	args := m.Called(ctx, kind, initiatorID)
	if list, ok := args.Get(0).([]relationship.Relationship); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RelationshipRepository) ListByCounterpart(ctx context.Context, kind string, counterpartID int64) ([]relationship.Relationship, error) {
	args := m.Called(ctx, kind, counterpartID)
	if list, ok := args.Get(0).([]relationship.Relationship); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RelationshipRepository) ListByParty(ctx context.Context, kind string, actorID int64) ([]relationship.Relationship, error) {
	args := m.Called(ctx, kind, actorID)
	if list, ok := args.Get(0).([]relationship.Relationship); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TicketRepository is a mock for ticket.Repository.
type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) Create(ctx context.Context, tk *ticket.SupportTicket) error {
	args := m.Called(ctx, tk)
	return args.Error(0)
}

func (m *TicketRepository) Get(ctx context.Context, id string) (*ticket.SupportTicket, error) {
	args := m.Called(ctx, id)
	if tk, ok := args.Get(0).(*ticket.SupportTicket); ok {
		return tk, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepository) Update(ctx context.Context, tk *ticket.SupportTicket, from ticket.Status) error {
	args := m.Called(ctx, tk, from)
	return args.Error(0)
}

func (m *TicketRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TicketRepository) ListByRequester(ctx context.Context, requesterID int64) ([]ticket.SupportTicket, error) {
	args := m.Called(ctx, requesterID)
	if list, ok := args.Get(0).([]ticket.SupportTicket); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepository) ListByStatus(ctx context.Context, status ticket.Status) ([]ticket.SupportTicket, error) {
	args := m.Called(ctx, status)
	if list, ok := args.Get(0).([]ticket.SupportTicket); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepository) ListAll(ctx context.Context) ([]ticket.SupportTicket, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]ticket.SupportTicket); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepository) AddComment(ctx context.Context, cm *ticket.Comment) error {
	args := m.Called(ctx, cm)
	return args.Error(0)
}

func (m *TicketRepository) ListComments(ctx context.Context, ticketID string) ([]ticket.Comment, error) {
	args := m.Called(ctx, ticketID)
	if list, ok := args.Get(0).([]ticket.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

package engagement

import (
	"context"

	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/domain/request"
)

// RequestService defines the request engine operations the facade composes.
type RequestService interface {
	Create(ctx context.Context, req request.CreateRequest) (*request.Request, error)
	Accept(ctx context.Context, id string, actingActorID int64) (*request.Request, error)
	Reject(ctx context.Context, id string, actingActorID int64) (*request.Request, error)
	ListSent(ctx context.Context, actorID int64) ([]request.Request, error)
	ListReceived(ctx context.Context, actorID int64) ([]request.Request, error)
}

// RelationshipService defines the registry operations the facade composes.
type RelationshipService interface {
	Block(ctx context.Context, id string, actingActorID int64) (*relationship.Relationship, error)
	Unblock(ctx context.Context, id string, actingActorID int64) (*relationship.Relationship, error)
	Remove(ctx context.Context, id string, actingActorID int64) error
	ListAsMentor(ctx context.Context, actorID int64) ([]relationship.Relationship, error)
	ListAsMentee(ctx context.Context, actorID int64) ([]relationship.Relationship, error)
	ListSwapPartners(ctx context.Context, actorID int64) ([]relationship.Relationship, error)
}

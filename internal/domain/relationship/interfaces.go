package relationship

import "context"

// Repository provides persistence for relationships.
type Repository interface {
	Create(ctx context.Context, rel *Relationship) error
	Get(ctx context.Context, id string) (*Relationship, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Relationship, error)
	Delete(ctx context.Context, id string) error
	ListByInitiator(ctx context.Context, kind string, initiatorID int64) ([]Relationship, error)
	ListByCounterpart(ctx context.Context, kind string, counterpartID int64) ([]Relationship, error)
	ListByParty(ctx context.Context, kind string, actorID int64) ([]Relationship, error)
}

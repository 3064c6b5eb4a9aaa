package request

import "context"

// Repository provides persistence for requests.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Request, error)
	ListSent(ctx context.Context, senderID int64) ([]Request, error)
	ListReceived(ctx context.Context, receiverID int64) ([]Request, error)
}

// RelationshipRecorder materializes an accepted request into a durable
// relationship. It is the only path through which relationships are created,
// so a relationship can never exist without a corresponding accepted request.
type RelationshipRecorder interface {
	RecordAccepted(ctx context.Context, kind string, initiatorID, counterpartID int64) error
}

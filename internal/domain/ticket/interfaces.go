package ticket

import "context"

// Repository provides persistence for support tickets and their comments.
type Repository interface {
	Create(ctx context.Context, tk *SupportTicket) error
	Get(ctx context.Context, id string) (*SupportTicket, error)
	Update(ctx context.Context, tk *SupportTicket, from Status) error
	Delete(ctx context.Context, id string) error
	ListByRequester(ctx context.Context, requesterID int64) ([]SupportTicket, error)
	ListByStatus(ctx context.Context, status Status) ([]SupportTicket, error)
	ListAll(ctx context.Context) ([]SupportTicket, error)
	AddComment(ctx context.Context, cm *Comment) error
	ListComments(ctx context.Context, ticketID string) ([]Comment, error)
}

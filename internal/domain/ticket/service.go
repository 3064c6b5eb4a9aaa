package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/campusware/peerlink/internal/repository"
	"github.com/google/uuid"
)

// Service handles support ticket business logic.
type Service struct {
	tickets Repository
	logger  *slog.Logger
}

// NewService creates a new ticket service.
func NewService(tickets Repository, logger *slog.Logger) *Service {
	return &Service{tickets: tickets, logger: logger}
}

// Open creates a new pending ticket for the requester. No helper is assigned
// at this point.
func (s *Service) Open(ctx context.Context, requesterID, competenceID int64, competenceName string) (*SupportTicket, error) {
	if competenceID <= 0 {
		return nil, ErrInvalidInput
	}

	tk := &SupportTicket{
		ID:             uuid.NewString(),
		RequesterID:    requesterID,
		CompetenceID:   competenceID,
		CompetenceName: competenceName,
		Status:         StatusPending,
		DateRequested:  time.Now(),
	}

	if err := s.tickets.Create(ctx, tk); err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("support ticket opened",
			"ticket_id", tk.ID, "requester_id", tk.RequesterID, "competence_id", tk.CompetenceID)
	}
	return tk, nil
}

// AssignHelper proposes a helper without changing the ticket status. Approval
// is a separate, explicit step so a helper can be suggested before the
// requester's demand is formally taken up. Once the ticket has left Pending
// the helper is fixed.
func (s *Service) AssignHelper(ctx context.Context, id string, helperID int64) (*SupportTicket, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != StatusPending {
		return nil, ErrInvalidTransition
	}
	if helperID == current.RequesterID {
		return nil, ErrInvalidTarget
	}

	updated := *current
	updated.HelperID = &helperID
	if err := s.tickets.Update(ctx, &updated, StatusPending); err != nil {
		return nil, s.updateError("assigning helper", err)
	}
	return &updated, nil
}

// Approve transitions a pending ticket to approved. If no helper has been
// proposed, the approving actor becomes the helper.
func (s *Service) Approve(ctx context.Context, id string, actingActorID int64) (*SupportTicket, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != StatusPending {
		return nil, ErrInvalidTransition
	}
	if actingActorID == current.RequesterID {
		return nil, ErrInvalidTarget
	}

	updated := *current
	updated.Status = StatusApproved
	if updated.HelperID == nil {
		updated.HelperID = &actingActorID
	}
	if err := s.tickets.Update(ctx, &updated, StatusPending); err != nil {
		return nil, s.updateError("approving ticket", err)
	}

	if s.logger != nil {
		s.logger.Info("support ticket approved", "ticket_id", id, "helper_id", *updated.HelperID)
	}
	return &updated, nil
}

// Cancel transitions a pending ticket to cancelled. Only the requester may
// cancel, and only while the ticket is still pending.
func (s *Service) Cancel(ctx context.Context, id string, actingActorID int64) (*SupportTicket, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if actingActorID != current.RequesterID {
		return nil, ErrNotAuthorized
	}
	if current.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	updated := *current
	updated.Status = StatusCancelled
	if err := s.tickets.Update(ctx, &updated, StatusPending); err != nil {
		return nil, s.updateError("cancelling ticket", err)
	}
	return &updated, nil
}

// Complete transitions an approved ticket to completed.
func (s *Service) Complete(ctx context.Context, id string) (*SupportTicket, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != StatusApproved {
		return nil, ErrInvalidTransition
	}

	updated := *current
	updated.Status = StatusCompleted
	if err := s.tickets.Update(ctx, &updated, StatusApproved); err != nil {
		return nil, s.updateError("completing ticket", err)
	}
	return &updated, nil
}

// updateError maps store results of a compare-and-set write. A conflict means
// another client transitioned the ticket first; the store's answer is
// authoritative.
func (s *Service) updateError(op string, err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return ErrInvalidTransition
	}
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTicketNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Delete removes a ticket and its comments. Only the requester may delete.
func (s *Service) Delete(ctx context.Context, id string, actingActorID int64) error {
	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if actingActorID != current.RequesterID {
		return ErrNotAuthorized
	}

	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTicketNotFound
		}
		return fmt.Errorf("deleting ticket: %w", err)
	}
	return nil
}

// AddComment appends a comment to the ticket's thread. Comments are open to
// any authenticated actor to support open Q&A.
func (s *Service) AddComment(ctx context.Context, ticketID string, authorID int64, content string) (*Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.load(ctx, ticketID); err != nil {
		return nil, err
	}

	cm := &Comment{
		ID:        uuid.NewString(),
		TicketID:  ticketID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.tickets.AddComment(ctx, cm); err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}
	return cm, nil
}

// Get returns a ticket with its full comment thread.
func (s *Service) Get(ctx context.Context, id string) (*TicketDetail, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.tickets.ListComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return &TicketDetail{SupportTicket: *current, Comments: comments}, nil
}

// ListMine returns the actor's own tickets.
func (s *Service) ListMine(ctx context.Context, actorID int64) ([]SupportTicket, error) {
	tks, err := s.tickets.ListByRequester(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("listing own tickets: %w", err)
	}
	return tks, nil
}

// ListPending returns tickets awaiting a helper.
func (s *Service) ListPending(ctx context.Context) ([]SupportTicket, error) {
	tks, err := s.tickets.ListByStatus(ctx, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("listing pending tickets: %w", err)
	}
	return tks, nil
}

// ListBoard returns all tickets with their comment threads for the support board.
func (s *Service) ListBoard(ctx context.Context) ([]TicketDetail, error) {
	tks, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}

	board := make([]TicketDetail, 0, len(tks))
	for _, tk := range tks {
		comments, err := s.tickets.ListComments(ctx, tk.ID)
		if err != nil {
			return nil, fmt.Errorf("listing comments: %w", err)
		}
		board = append(board, TicketDetail{SupportTicket: tk, Comments: comments})
	}
	return board, nil
}

func (s *Service) load(ctx context.Context, id string) (*SupportTicket, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	current, err := s.tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("loading ticket: %w", err)
	}
	return current, nil
}

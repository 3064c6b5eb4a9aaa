package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusware/peerlink/internal/repository"
	"github.com/google/uuid"
)

// Service handles engagement request business logic.
type Service struct {
	requests      Repository
	relationships RelationshipRecorder
	logger        *slog.Logger
}

// NewService creates a new request service.
func NewService(requests Repository, relationships RelationshipRecorder, logger *slog.Logger) *Service {
	return &Service{
		requests:      requests,
		relationships: relationships,
		logger:        logger,
	}
}

// CreateRequest describes a request creation.
type CreateRequest struct {
	Kind       Kind
	SenderID   int64
	ReceiverID int64
	Message    string
}

// Create validates and persists a new pending request. The duplicate check
// against the sender's outbound requests is advisory; the store's unique
// constraint is the source of truth and maps to the same error.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Request, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	sent, err := s.requests.ListSent(ctx, req.SenderID)
	if err != nil {
		return nil, fmt.Errorf("listing sent requests: %w", err)
	}
	for _, prior := range sent {
		if prior.ReceiverID == req.ReceiverID && prior.Kind == req.Kind && prior.Status != StatusRejected {
			return nil, ErrDuplicateActive
		}
	}

	now := time.Now()
	rec := &Request{
		ID:         uuid.NewString(),
		Kind:       req.Kind,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.requests.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateActive
		}
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrInvalidTarget
		}
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("request created",
			"request_id", rec.ID, "kind", rec.Kind,
			"sender_id", rec.SenderID, "receiver_id", rec.ReceiverID)
	}
	return rec, nil
}

// Accept transitions a pending request to accepted and materializes the
// corresponding relationship. For mentoring, the receiver is recorded as the
// mentor and the sender as the mentee.
func (s *Service) Accept(ctx context.Context, id string, actingActorID int64) (*Request, error) {
	updated, err := s.decide(ctx, id, actingActorID, StatusAccepted)
	if err != nil {
		return nil, err
	}

	if err := s.relationships.RecordAccepted(ctx, string(updated.Kind), updated.SenderID, updated.ReceiverID); err != nil {
		// The accept and the relationship write are separate statements; roll
		// the accept back so an accepted request never lacks its relationship.
		if _, revertErr := s.requests.UpdateStatus(ctx, id, StatusAccepted, StatusPending); revertErr != nil {
			if s.logger != nil {
				s.logger.Error("failed to revert accept after relationship write failure",
					"request_id", id, "error", revertErr)
			}
		}
		return nil, fmt.Errorf("recording relationship: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("request accepted", "request_id", updated.ID, "kind", updated.Kind)
	}
	return updated, nil
}

// Reject transitions a pending request to rejected. No relationship results.
func (s *Service) Reject(ctx context.Context, id string, actingActorID int64) (*Request, error) {
	return s.decide(ctx, id, actingActorID, StatusRejected)
}

func (s *Service) decide(ctx context.Context, id string, actingActorID int64, to Status) (*Request, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.requests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("loading request: %w", err)
	}

	if current.ReceiverID != actingActorID {
		return nil, ErrNotAuthorized
	}
	if err := ValidateTransition(current.Status, to); err != nil {
		return nil, err
	}

	updated, err := s.requests.UpdateStatus(ctx, id, StatusPending, to)
	if err != nil {
		// A conflict means another client decided the request first; the
		// store's answer is authoritative.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidTransition
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("updating request status: %w", err)
	}
	return updated, nil
}

// ListSent returns all outbound requests for the actor, any kind, any status.
func (s *Service) ListSent(ctx context.Context, actorID int64) ([]Request, error) {
	reqs, err := s.requests.ListSent(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("listing sent requests: %w", err)
	}
	return reqs, nil
}

// ListReceived returns all inbound requests for the actor.
func (s *Service) ListReceived(ctx context.Context, actorID int64) ([]Request, error) {
	reqs, err := s.requests.ListReceived(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("listing received requests: %w", err)
	}
	return reqs, nil
}

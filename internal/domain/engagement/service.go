package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/request"
)

// ErrInvalidDecision indicates an unknown respond verdict.
var ErrInvalidDecision = errors.New("decision must be accept or reject")

// Service is the composition layer presented to the transport surfaces. It
// merges ranked candidates with the contact ledger, delegates mutations to
// the request engine and relationship registry, and re-fetches store state
// after every mutation instead of patching a local cache.
type Service struct {
	ranker        candidate.Ranker
	requests      RequestService
	relationships RelationshipService
	logger        *slog.Logger
}

// NewService creates a new engagement facade.
func NewService(ranker candidate.Ranker, requests RequestService, relationships RelationshipService, logger *slog.Logger) *Service {
	return &Service{
		ranker:        ranker,
		requests:      requests,
		relationships: relationships,
		logger:        logger,
	}
}

// ListRankedCandidates returns the ranker's output for the actor joined with
// a freshly built contact ledger. A ranker failure surfaces as-is; nothing is
// cached or partially applied.
func (s *Service) ListRankedCandidates(ctx context.Context, actorID int64, kind request.Kind, limit int) ([]candidate.Ranked, error) {
	scores, err := s.ranker.Rank(ctx, actorID, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking candidates: %w", err)
	}

	ledger, err := s.buildLedger(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return ledger.Annotate(scores, kind), nil
}

// SendEngagementRequest creates an outbound request and returns it together
// with the refreshed view, so derived state (ledger, badges) never lags the
// store.
func (s *Service) SendEngagementRequest(ctx context.Context, actorID int64, kind request.Kind, candidateID int64, message string) (*request.Request, *View, error) {
	ledger, err := s.buildLedger(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if ledger.Contacted(candidateID, kind) {
		return nil, nil, request.ErrDuplicateActive
	}

	created, err := s.requests.Create(ctx, request.CreateRequest{
		Kind:       kind,
		SenderID:   actorID,
		ReceiverID: candidateID,
		Message:    message,
	})
	if err != nil {
		return nil, nil, err
	}

	view, err := s.Overview(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	return created, view, nil
}

// RespondToRequest accepts or rejects a pending inbound request, then
// re-fetches both requests and relationships so counts stay correct.
func (s *Service) RespondToRequest(ctx context.Context, actorID int64, requestID string, decision Decision) (*request.Request, *View, error) {
	var (
		updated *request.Request
		err     error
	)
	switch decision {
	case DecisionAccept:
		updated, err = s.requests.Accept(ctx, requestID, actorID)
	case DecisionReject:
		updated, err = s.requests.Reject(ctx, requestID, actorID)
	default:
		return nil, nil, ErrInvalidDecision
	}
	if err != nil {
		return nil, nil, err
	}

	view, err := s.Overview(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	return updated, view, nil
}

// BlockRelationship blocks and returns the refreshed view.
func (s *Service) BlockRelationship(ctx context.Context, actorID int64, relationshipID string) (*View, error) {
	if _, err := s.relationships.Block(ctx, relationshipID, actorID); err != nil {
		return nil, err
	}
	return s.Overview(ctx, actorID)
}

// UnblockRelationship unblocks and returns the refreshed view.
func (s *Service) UnblockRelationship(ctx context.Context, actorID int64, relationshipID string) (*View, error) {
	if _, err := s.relationships.Unblock(ctx, relationshipID, actorID); err != nil {
		return nil, err
	}
	return s.Overview(ctx, actorID)
}

// RemoveRelationship hard-deletes and returns the refreshed view.
func (s *Service) RemoveRelationship(ctx context.Context, actorID int64, relationshipID string) (*View, error) {
	if err := s.relationships.Remove(ctx, relationshipID, actorID); err != nil {
		return nil, err
	}
	return s.Overview(ctx, actorID)
}

// Overview re-fetches the actor's requests and relationships and derives the
// badge counts. Reads happen strictly after any preceding mutation resolved.
func (s *Service) Overview(ctx context.Context, actorID int64) (*View, error) {
	sent, err := s.requests.ListSent(ctx, actorID)
	if err != nil {
		return nil, err
	}
	received, err := s.requests.ListReceived(ctx, actorID)
	if err != nil {
		return nil, err
	}
	mentors, err := s.relationships.ListAsMentor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	mentees, err := s.relationships.ListAsMentee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	partners, err := s.relationships.ListSwapPartners(ctx, actorID)
	if err != nil {
		return nil, err
	}

	view := &View{
		SentRequests:     sent,
		ReceivedRequests: received,
		Mentors:          mentors,
		Mentees:          mentees,
		SwapPartners:     partners,
	}
	for _, req := range sent {
		if req.Status == request.StatusPending {
			view.PendingSent++
		}
	}
	for _, req := range received {
		if req.Status == request.StatusPending {
			view.PendingReceived++
		}
	}
	return view, nil
}

func (s *Service) buildLedger(ctx context.Context, actorID int64) (*candidate.Ledger, error) {
	sent, err := s.requests.ListSent(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("refreshing contact ledger: %w", err)
	}
	return candidate.NewLedger(sent), nil
}

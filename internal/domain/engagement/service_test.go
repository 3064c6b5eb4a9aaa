package engagement_test

import (
	"context"
	"testing"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type rankerMock struct {
	mock.Mock
}

func (m *rankerMock) Rank(ctx context.Context, actorID int64, kind request.Kind, limit int) ([]candidate.Score, error) {
	args := m.Called(ctx, actorID, kind, limit)
	if scores, ok := args.Get(0).([]candidate.Score); ok {
		return scores, args.Error(1)
	}
	return nil, args.Error(1)
}

type requestServiceMock struct {
	mock.Mock
}

func (m *requestServiceMock) Create(ctx context.Context, req request.CreateRequest) (*request.Request, error) {
	args := m.Called(ctx, req)
	if created, ok := args.Get(0).(*request.Request); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *requestServiceMock) Accept(ctx context.Context, id string, actingActorID int64) (*request.Request, error) {
	args := m.Called(ctx, id, actingActorID)
	if updated, ok := args.Get(0).(*request.Request); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *requestServiceMock) Reject(ctx context.Context, id string, actingActorID int64) (*request.Request, error) {
	args := m.Called(ctx, id, actingActorID)
	if updated, ok := args.Get(0).(*request.Request); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *requestServiceMock) ListSent(ctx context.Context, actorID int64) ([]request.Request, error) {
	args := m.Called(ctx, actorID)
	if list, ok := args.Get(0).([]request.Request); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *requestServiceMock) ListReceived(ctx context.Context, actorID int64) ([]request.Request, error) {
	args := m.Called(ctx, actorID)
	if list, ok := args.Get(0).([]request.Request); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type relationshipServiceMock struct {
	mock.Mock
}

func (m *relationshipServiceMock) Block(ctx context.Context, id string, actingActorID int64) (*relationship.Relationship, error) {
	args := m.Called(ctx, id, actingActorID)
	if rel, ok := args.Get(0).(*relationship.Relationship); ok {
		return rel, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *relationshipServiceMock) Unblock(ctx context.Context, id string, actingActorID int64) (*relationship.Relationship, error) {
	args := m.Called(ctx, id, actingActorID)
	if rel, ok := args.Get(0).(*relationship.Relationship); ok {
		return rel, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *relationshipServiceMock) Remove(ctx context.Context, id string, actingActorID int64) error {
	args := m.Called(ctx, id, actingActorID)
	return args.Error(0)
}

func (m *relationshipServiceMock) ListAsMentor(ctx context.Context, actorID int64) ([]relationship.Relationship, error) {
	args := m.Called(ctx, actorID)
	if list, ok := args.Get(0).([]relationship.Relationship); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *relationshipServiceMock) ListAsMentee(ctx context.Context, actorID int64) ([]relationship.Relationship, error) {
	args := m.Called(ctx, actorID)
	if list, ok := args.Get(0).([]relationship.Relationship); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *relationshipServiceMock) ListSwapPartners(ctx context.Context, actorID int64) ([]relationship.Relationship, error) {
	args := m.Called(ctx, actorID)
	if list, ok := args.Get(0).([]relationship.Relationship); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func emptyRelationships(rels *relationshipServiceMock, ctx context.Context, actorID int64) {
	rels.On("ListAsMentor", ctx, actorID).Return([]relationship.Relationship{}, nil)
	rels.On("ListAsMentee", ctx, actorID).Return([]relationship.Relationship{}, nil)
	rels.On("ListSwapPartners", ctx, actorID).Return([]relationship.Relationship{}, nil)
}

func TestEngagementService_ListRankedCandidatesAnnotates(t *testing.T) {
	ctx := context.Background()

	ranker := &rankerMock{}
	ranker.On("Rank", ctx, int64(1), request.KindSkillSwap, 10).Return([]candidate.Score{
		{CandidateID: 2, Score: 0.9},
		{CandidateID: 3, Score: 0.5},
	}, nil)

	reqs := &requestServiceMock{}
	reqs.On("ListSent", ctx, int64(1)).Return([]request.Request{
		{ReceiverID: 2, Kind: request.KindSkillSwap, Status: request.StatusPending},
	}, nil)

	svc := engagement.NewService(ranker, reqs, &relationshipServiceMock{}, nil)
	ranked, err := svc.ListRankedCandidates(ctx, 1, request.KindSkillSwap, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.True(t, ranked[0].AlreadyContacted)
	require.False(t, ranked[1].AlreadyContacted)
}

func TestEngagementService_ListRankedCandidatesRankerDown(t *testing.T) {
	ctx := context.Background()

	ranker := &rankerMock{}
	ranker.On("Rank", ctx, int64(1), request.KindMentoring, 5).
		Return(nil, candidate.ErrRankerUnavailable)

	reqs := &requestServiceMock{}
	svc := engagement.NewService(ranker, reqs, &relationshipServiceMock{}, nil)

	_, err := svc.ListRankedCandidates(ctx, 1, request.KindMentoring, 5)
	require.ErrorIs(t, err, candidate.ErrRankerUnavailable)
	reqs.AssertNotCalled(t, "ListSent", mock.Anything, mock.Anything)
}

func TestEngagementService_SendRequestRefreshesView(t *testing.T) {
	ctx := context.Background()

	created := &request.Request{
		ID: "r1", Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2,
		Status: request.StatusPending,
	}

	reqs := &requestServiceMock{}
	// First ListSent builds the pre-check ledger; later calls feed the view.
	reqs.On("ListSent", ctx, int64(1)).Return([]request.Request{}, nil).Once()
	reqs.On("Create", ctx, request.CreateRequest{
		Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2, Message: "trade you Go for SQL",
	}).Return(created, nil)
	reqs.On("ListSent", ctx, int64(1)).Return([]request.Request{*created}, nil)
	reqs.On("ListReceived", ctx, int64(1)).Return([]request.Request{}, nil)

	rels := &relationshipServiceMock{}
	emptyRelationships(rels, ctx, 1)

	svc := engagement.NewService(&rankerMock{}, reqs, rels, nil)
	got, view, err := svc.SendEngagementRequest(ctx, 1, request.KindSkillSwap, 2, "trade you Go for SQL")
	require.NoError(t, err)
	require.Equal(t, "r1", got.ID)
	require.Len(t, view.SentRequests, 1)
	require.Equal(t, 1, view.PendingSent)
}

func TestEngagementService_SendRequestLedgerPreCheck(t *testing.T) {
	ctx := context.Background()

	reqs := &requestServiceMock{}
	reqs.On("ListSent", ctx, int64(1)).Return([]request.Request{
		{ReceiverID: 2, Kind: request.KindSkillSwap, Status: request.StatusPending},
	}, nil)

	svc := engagement.NewService(&rankerMock{}, reqs, &relationshipServiceMock{}, nil)
	_, _, err := svc.SendEngagementRequest(ctx, 1, request.KindSkillSwap, 2, "again")
	require.ErrorIs(t, err, request.ErrDuplicateActive)
	reqs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngagementService_RespondAcceptRefreshes(t *testing.T) {
	ctx := context.Background()

	accepted := &request.Request{
		ID: "r1", Kind: request.KindMentoring, SenderID: 2, ReceiverID: 1,
		Status: request.StatusAccepted,
	}

	reqs := &requestServiceMock{}
	reqs.On("Accept", ctx, "r1", int64(1)).Return(accepted, nil)
	reqs.On("ListSent", ctx, int64(1)).Return([]request.Request{}, nil)
	reqs.On("ListReceived", ctx, int64(1)).Return([]request.Request{*accepted}, nil)

	rels := &relationshipServiceMock{}
	rels.On("ListAsMentor", ctx, int64(1)).Return([]relationship.Relationship{
		{ID: "rel1", Kind: relationship.KindMentoring, InitiatorID: 2, CounterpartID: 1, Status: relationship.StatusActive},
	}, nil)
	rels.On("ListAsMentee", ctx, int64(1)).Return([]relationship.Relationship{}, nil)
	rels.On("ListSwapPartners", ctx, int64(1)).Return([]relationship.Relationship{}, nil)

	svc := engagement.NewService(&rankerMock{}, reqs, rels, nil)
	updated, view, err := svc.RespondToRequest(ctx, 1, "r1", engagement.DecisionAccept)
	require.NoError(t, err)
	require.Equal(t, request.StatusAccepted, updated.Status)
	require.Len(t, view.Mentors, 1)
	require.Equal(t, 0, view.PendingReceived)
}

func TestEngagementService_RespondUnknownDecision(t *testing.T) {
	ctx := context.Background()

	svc := engagement.NewService(&rankerMock{}, &requestServiceMock{}, &relationshipServiceMock{}, nil)
	_, _, err := svc.RespondToRequest(ctx, 1, "r1", "maybe")
	require.ErrorIs(t, err, engagement.ErrInvalidDecision)
}

func TestEngagementService_BlockRefreshesView(t *testing.T) {
	ctx := context.Background()

	blocked := &relationship.Relationship{
		ID: "rel1", Kind: relationship.KindSkillSwap, InitiatorID: 1, CounterpartID: 2,
		Status: relationship.StatusBlocked,
	}

	rels := &relationshipServiceMock{}
	rels.On("Block", ctx, "rel1", int64(1)).Return(blocked, nil)
	rels.On("ListAsMentor", ctx, int64(1)).Return([]relationship.Relationship{}, nil)
	rels.On("ListAsMentee", ctx, int64(1)).Return([]relationship.Relationship{}, nil)
	rels.On("ListSwapPartners", ctx, int64(1)).Return([]relationship.Relationship{*blocked}, nil)

	reqs := &requestServiceMock{}
	reqs.On("ListSent", ctx, int64(1)).Return([]request.Request{}, nil)
	reqs.On("ListReceived", ctx, int64(1)).Return([]request.Request{}, nil)

	svc := engagement.NewService(&rankerMock{}, reqs, rels, nil)
	view, err := svc.BlockRelationship(ctx, 1, "rel1")
	require.NoError(t, err)
	require.Len(t, view.SwapPartners, 1)
	require.Equal(t, relationship.StatusBlocked, view.SwapPartners[0].Status)
}

func TestEngagementService_MutationFailureSkipsRefresh(t *testing.T) {
	ctx := context.Background()

	rels := &relationshipServiceMock{}
	rels.On("Remove", ctx, "rel1", int64(3)).Return(relationship.ErrNotAuthorized)

	reqs := &requestServiceMock{}
	svc := engagement.NewService(&rankerMock{}, reqs, rels, nil)

	_, err := svc.RemoveRelationship(ctx, 3, "rel1")
	require.ErrorIs(t, err, relationship.ErrNotAuthorized)
	reqs.AssertNotCalled(t, "ListSent", mock.Anything, mock.Anything)
}

func TestEngagementService_OverviewCounts(t *testing.T) {
	ctx := context.Background()

	reqs := &requestServiceMock{}
	reqs.On("ListSent", ctx, int64(1)).Return([]request.Request{
		{ID: "s1", Status: request.StatusPending},
		{ID: "s2", Status: request.StatusAccepted},
	}, nil)
	reqs.On("ListReceived", ctx, int64(1)).Return([]request.Request{
		{ID: "in1", Status: request.StatusPending},
		{ID: "in2", Status: request.StatusPending},
		{ID: "in3", Status: request.StatusRejected},
	}, nil)

	rels := &relationshipServiceMock{}
	emptyRelationships(rels, ctx, 1)

	svc := engagement.NewService(&rankerMock{}, reqs, rels, nil)
	view, err := svc.Overview(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, view.PendingSent)
	require.Equal(t, 2, view.PendingReceived)
}

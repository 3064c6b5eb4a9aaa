package request_test

import (
	"context"
	"errors"
	"testing"

	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/repository"
	"github.com/campusware/peerlink/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recorderMock struct {
	mock.Mock
}

func (m *recorderMock) RecordAccepted(ctx context.Context, kind string, initiatorID, counterpartID int64) error {
	args := m.Called(ctx, kind, initiatorID, counterpartID)
	return args.Error(0)
}

func TestRequestService_CreateSelfTarget(t *testing.T) {
	ctx := context.Background()
	svc := request.NewService(&mocks.RequestRepository{}, &recorderMock{}, nil)

	_, err := svc.Create(ctx, request.CreateRequest{
		Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 1, Message: "hi",
	})
	require.ErrorIs(t, err, request.ErrInvalidTarget)
}

func TestRequestService_CreateBlankMessage(t *testing.T) {
	ctx := context.Background()
	svc := request.NewService(&mocks.RequestRepository{}, &recorderMock{}, nil)

	_, err := svc.Create(ctx, request.CreateRequest{
		Kind: request.KindMentoring, SenderID: 1, ReceiverID: 2, Message: "   ",
	})
	require.ErrorIs(t, err, request.ErrEmptyMessage)
}

func TestRequestService_CreateUnknownKind(t *testing.T) {
	ctx := context.Background()
	svc := request.NewService(&mocks.RequestRepository{}, &recorderMock{}, nil)

	_, err := svc.Create(ctx, request.CreateRequest{
		Kind: "tutoring", SenderID: 1, ReceiverID: 2, Message: "hi",
	})
	require.ErrorIs(t, err, request.ErrInvalidInput)
}

func TestRequestService_CreateDuplicateActive(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RequestRepository{}
	repo.On("ListSent", ctx, int64(1)).Return([]request.Request{
		{ID: "r1", Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2, Status: request.StatusPending},
	}, nil)

	svc := request.NewService(repo, &recorderMock{}, nil)
	_, err := svc.Create(ctx, request.CreateRequest{
		Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2, Message: "again",
	})
	require.ErrorIs(t, err, request.ErrDuplicateActive)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestService_CreateAfterRejection(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RequestRepository{}
	repo.On("ListSent", ctx, int64(1)).Return([]request.Request{
		{ID: "r1", Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2, Status: request.StatusRejected},
	}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := request.NewService(repo, &recorderMock{}, nil)
	created, err := svc.Create(ctx, request.CreateRequest{
		Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2, Message: "second try",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, request.StatusPending, created.Status)
}

func TestRequestService_CreateDifferentKindAllowed(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RequestRepository{}
	repo.On("ListSent", ctx, int64(1)).Return([]request.Request{
		{ID: "r1", Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2, Status: request.StatusPending},
	}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := request.NewService(repo, &recorderMock{}, nil)
	created, err := svc.Create(ctx, request.CreateRequest{
		Kind: request.KindMentoring, SenderID: 1, ReceiverID: 2, Message: "mentor me",
	})
	require.NoError(t, err)
	require.Equal(t, request.KindMentoring, created.Kind)
}

func TestRequestService_CreateStoreDuplicate(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RequestRepository{}
	repo.On("ListSent", ctx, int64(1)).Return([]request.Request{}, nil)
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	svc := request.NewService(repo, &recorderMock{}, nil)
	_, err := svc.Create(ctx, request.CreateRequest{
		Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2, Message: "hi",
	})
	require.ErrorIs(t, err, request.ErrDuplicateActive)
}

func TestRequestService_CreateUnknownReceiver(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RequestRepository{}
	repo.On("ListSent", ctx, int64(1)).Return([]request.Request{}, nil)
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := request.NewService(repo, &recorderMock{}, nil)
	_, err := svc.Create(ctx, request.CreateRequest{
		Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 99, Message: "hi",
	})
	require.ErrorIs(t, err, request.ErrInvalidTarget)
}

func TestRequestService_AcceptCreatesRelationship(t *testing.T) {
	ctx := context.Background()

	pending := &request.Request{
		ID: "r1", Kind: request.KindMentoring, SenderID: 1, ReceiverID: 2,
		Status: request.StatusPending,
	}
	accepted := &request.Request{
		ID: "r1", Kind: request.KindMentoring, SenderID: 1, ReceiverID: 2,
		Status: request.StatusAccepted,
	}

	repo := &mocks.RequestRepository{}
	repo.On("Get", ctx, "r1").Return(pending, nil)
	repo.On("UpdateStatus", ctx, "r1", request.StatusPending, request.StatusAccepted).Return(accepted, nil)

	recorder := &recorderMock{}
	recorder.On("RecordAccepted", ctx, "mentoring", int64(1), int64(2)).Return(nil)

	svc := request.NewService(repo, recorder, nil)
	updated, err := svc.Accept(ctx, "r1", 2)
	require.NoError(t, err)
	require.Equal(t, request.StatusAccepted, updated.Status)
	recorder.AssertExpectations(t)
}

func TestRequestService_AcceptNotReceiver(t *testing.T) {
	ctx := context.Background()

	pending := &request.Request{
		ID: "r1", Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2,
		Status: request.StatusPending,
	}

	repo := &mocks.RequestRepository{}
	repo.On("Get", ctx, "r1").Return(pending, nil)

	svc := request.NewService(repo, &recorderMock{}, nil)
	_, err := svc.Accept(ctx, "r1", 1)
	require.ErrorIs(t, err, request.ErrNotAuthorized)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_AcceptAlreadyDecided(t *testing.T) {
	ctx := context.Background()

	decided := &request.Request{
		ID: "r1", Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2,
		Status: request.StatusAccepted,
	}

	repo := &mocks.RequestRepository{}
	repo.On("Get", ctx, "r1").Return(decided, nil)

	svc := request.NewService(repo, &recorderMock{}, nil)
	_, err := svc.Accept(ctx, "r1", 2)
	require.ErrorIs(t, err, request.ErrInvalidTransition)
}

func TestRequestService_AcceptLostRace(t *testing.T) {
	ctx := context.Background()

	pending := &request.Request{
		ID: "r1", Kind: request.KindSkillSwap, SenderID: 1, ReceiverID: 2,
		Status: request.StatusPending,
	}

	repo := &mocks.RequestRepository{}
	repo.On("Get", ctx, "r1").Return(pending, nil)
	repo.On("UpdateStatus", ctx, "r1", request.StatusPending, request.StatusAccepted).
		Return((*request.Request)(nil), repository.ErrConflict)

	recorder := &recorderMock{}
	svc := request.NewService(repo, recorder, nil)
	_, err := svc.Accept(ctx, "r1", 2)
	require.ErrorIs(t, err, request.ErrInvalidTransition)
	recorder.AssertNotCalled(t, "RecordAccepted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_AcceptRevertsWhenRelationshipWriteFails(t *testing.T) {
	ctx := context.Background()

	pending := &request.Request{
		ID: "r1", Kind: request.KindMentoring, SenderID: 1, ReceiverID: 2,
		Status: request.StatusPending,
	}
	accepted := &request.Request{
		ID: "r1", Kind: request.KindMentoring, SenderID: 1, ReceiverID: 2,
		Status: request.StatusAccepted,
	}

	repo := &mocks.RequestRepository{}
	repo.On("Get", ctx, "r1").Return(pending, nil)
	repo.On("UpdateStatus", ctx, "r1", request.StatusPending, request.StatusAccepted).
		Return(accepted, nil)
	// The failed relationship write must roll the accept back.
	repo.On("UpdateStatus", ctx, "r1", request.StatusAccepted, request.StatusPending).
		Return(pending, nil)

	recorder := &recorderMock{}
	recorder.On("RecordAccepted", ctx, "mentoring", int64(1), int64(2)).
		Return(errors.New("relationships table locked"))

	svc := request.NewService(repo, recorder, nil)
	_, err := svc.Accept(ctx, "r1", 2)
	require.Error(t, err)
	repo.AssertCalled(t, "UpdateStatus", ctx, "r1", request.StatusAccepted, request.StatusPending)
}

func TestRequestService_RejectNoRelationship(t *testing.T) {
	ctx := context.Background()

	pending := &request.Request{
		ID: "r1", Kind: request.KindMentoring, SenderID: 1, ReceiverID: 2,
		Status: request.StatusPending,
	}
	rejected := &request.Request{
		ID: "r1", Kind: request.KindMentoring, SenderID: 1, ReceiverID: 2,
		Status: request.StatusRejected,
	}

	repo := &mocks.RequestRepository{}
	repo.On("Get", ctx, "r1").Return(pending, nil)
	repo.On("UpdateStatus", ctx, "r1", request.StatusPending, request.StatusRejected).Return(rejected, nil)

	recorder := &recorderMock{}
	svc := request.NewService(repo, recorder, nil)
	updated, err := svc.Reject(ctx, "r1", 2)
	require.NoError(t, err)
	require.Equal(t, request.StatusRejected, updated.Status)
	recorder.AssertNotCalled(t, "RecordAccepted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_DecideNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RequestRepository{}
	repo.On("Get", ctx, "missing").Return((*request.Request)(nil), repository.ErrNotFound)

	svc := request.NewService(repo, &recorderMock{}, nil)
	_, err := svc.Accept(ctx, "missing", 2)
	require.ErrorIs(t, err, request.ErrRequestNotFound)
}

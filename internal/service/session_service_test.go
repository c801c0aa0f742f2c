package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "membox/backend/internal/errors"
	"membox/backend/internal/model"
	"membox/backend/internal/repository"
	mock_repo "membox/backend/internal/repository/mocks"
	"membox/backend/internal/service"
)

func TestSessionService_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - new session becomes current", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		repo.On("GetUser", ctx, "alice").Return(&model.User{ID: "alice"}, nil).Once()

		var createdID string
		repo.On("CreateSession", ctx, mock.MatchedBy(func(s *model.Session) bool {
			createdID = s.ID
			return s.UserID == "alice" && s.Title == "New Chat"
		})).Return(nil).Once()
		repo.On("SetCurrentSession", ctx, "alice", mock.MatchedBy(func(id *string) bool {
			return id != nil && *id == createdID
		})).Return(nil).Once()

		session, err := svc.CreateSession(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", session.UserID)
	})

	t.Run("Failure - unknown user", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		repo.On("GetUser", ctx, "ghost").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.CreateSession(ctx, "ghost")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestSessionService_Get_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	svc := service.NewSessionService(repo)

	repo.On("GetSession", ctx, "sess1").Return(&model.Session{ID: "sess1", UserID: "alice"}, nil).Twice()

	_, err := svc.Get(ctx, "bob", "sess1")
	assert.ErrorIs(t, err, app_errors.ErrPermission)

	session, err := svc.Get(ctx, "alice", "sess1")
	require.NoError(t, err)
	assert.Equal(t, "sess1", session.ID)
}

func TestSessionService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	sessID := "sess1"

	t.Run("Deleting the current session falls back to the next one", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		repo.On("GetSession", ctx, sessID).Return(&model.Session{ID: sessID, UserID: "alice"}, nil).Once()
		repo.On("DeleteSession", ctx, sessID).Return(nil).Once()
		repo.On("GetUser", ctx, "alice").Return(&model.User{ID: "alice", CurrentSessionID: &sessID}, nil).Once()
		repo.On("GetSessions", ctx, "alice").Return([]*model.Session{
			{ID: "sess2", UserID: "alice"},
			{ID: "sess3", UserID: "alice"},
		}, nil).Once()
		repo.On("SetCurrentSession", ctx, "alice", mock.MatchedBy(func(id *string) bool {
			return id != nil && *id == "sess2"
		})).Return(nil).Once()

		err := svc.DeleteSession(ctx, "alice", sessID)
		assert.NoError(t, err)
	})

	t.Run("Deleting the last current session clears the pointer", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		repo.On("GetSession", ctx, sessID).Return(&model.Session{ID: sessID, UserID: "alice"}, nil).Once()
		repo.On("DeleteSession", ctx, sessID).Return(nil).Once()
		repo.On("GetUser", ctx, "alice").Return(&model.User{ID: "alice", CurrentSessionID: &sessID}, nil).Once()
		repo.On("GetSessions", ctx, "alice").Return(nil, nil).Once()
		repo.On("SetCurrentSession", ctx, "alice", (*string)(nil)).Return(nil).Once()

		err := svc.DeleteSession(ctx, "alice", sessID)
		assert.NoError(t, err)
	})

	t.Run("Deleting a non-current session leaves the pointer alone", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		other := "sess9"
		repo.On("GetSession", ctx, sessID).Return(&model.Session{ID: sessID, UserID: "alice"}, nil).Once()
		repo.On("DeleteSession", ctx, sessID).Return(nil).Once()
		repo.On("GetUser", ctx, "alice").Return(&model.User{ID: "alice", CurrentSessionID: &other}, nil).Once()

		err := svc.DeleteSession(ctx, "alice", sessID)
		assert.NoError(t, err)
	})

	t.Run("Deleting another user's session is forbidden", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		repo.On("GetSession", ctx, sessID).Return(&model.Session{ID: sessID, UserID: "alice"}, nil).Once()

		err := svc.DeleteSession(ctx, "bob", sessID)
		assert.ErrorIs(t, err, app_errors.ErrPermission)
	})
}

func TestSessionService_RefreshMeta(t *testing.T) {
	ctx := context.Background()

	t.Run("Title and preview derived from messages", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		session := &model.Session{ID: "sess1", UserID: "alice", UpdatedAt: time.Now().UTC().Add(-time.Minute)}
		longFirst := strings.Repeat("a", 80)
		repo.On("GetMessages", ctx, "sess1").Return([]model.Message{
			{Role: model.RoleUser, Content: longFirst},
			{Role: model.RoleAssistant, Content: "short reply"},
		}, nil).Once()
		repo.On("UpdateSessionMeta", ctx, "sess1",
			strings.Repeat("a", 50)+"…", "short reply", mock.AnythingOfType("time.Time"),
		).Return(nil).Once()

		err := svc.RefreshMeta(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, "short reply", session.Preview)
	})

	t.Run("UpdatedAt strictly increases even when the clock stalls", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		// An UpdatedAt from the future forces the stalled-clock branch.
		prev := time.Now().UTC().Add(time.Hour)
		session := &model.Session{ID: "sess1", UserID: "alice", UpdatedAt: prev}

		repo.On("GetMessages", ctx, "sess1").Return([]model.Message{
			{Role: model.RoleUser, Content: "hi"},
		}, nil).Once()
		repo.On("UpdateSessionMeta", ctx, "sess1", "hi", "hi", mock.MatchedBy(func(ts time.Time) bool {
			return ts.After(prev)
		})).Return(nil).Once()

		err := svc.RefreshMeta(ctx, session)
		require.NoError(t, err)
		assert.True(t, session.UpdatedAt.After(prev))
	})

	t.Run("Empty session keeps the default title", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewSessionService(repo)

		session := &model.Session{ID: "sess1", UserID: "alice"}
		repo.On("GetMessages", ctx, "sess1").Return(nil, nil).Once()
		repo.On("UpdateSessionMeta", ctx, "sess1", "New Chat", "", mock.AnythingOfType("time.Time")).Return(nil).Once()

		err := svc.RefreshMeta(ctx, session)
		assert.NoError(t, err)
	})
}

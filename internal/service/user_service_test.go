package service_test

import (
	"context"
	"errors"
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

func TestDeriveUserID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain lowercase", "alice", "alice"},
		{"mixed case", "Alice", "alice"},
		{"all caps", "ALICE", "alice"},
		{"surrounding whitespace", "  alice  ", "alice"},
		{"internal space", "Jo Hn", "jo_hn"},
		{"multiple internal spaces", "Jo   Hn", "jo_hn"},
		{"underscore name collides with spaced name", "jo_hn", "jo_hn"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, service.DeriveUserID(tc.input))
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates user on first login", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewUserService(repo)

		repo.On("GetUser", ctx, "alice").Return(nil, repository.ErrNotFound).Once()
		repo.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.ID == "alice" && u.Name == "Alice"
		})).Return(nil).Once()

		user, err := svc.Login(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.ID)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("Case and whitespace variants resolve to the same user", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewUserService(repo)

		existing := &model.User{ID: "alice", Name: "Alice", CreatedAt: time.Now()}
		// Each variant normalizes to "alice" and hits the same record.
		repo.On("GetUser", ctx, "alice").Return(existing, nil).Times(3)

		for _, name := range []string{"alice", "  ALICE ", "Alice"} {
			user, err := svc.Login(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, "alice", user.ID)
		}
	})

	t.Run("Empty name is rejected", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewUserService(repo)

		_, err := svc.Login(ctx, "   ")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Repository error is surfaced", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewUserService(repo)

		repo.On("GetUser", ctx, "alice").Return(nil, errors.New("db error")).Once()

		_, err := svc.Login(ctx, "alice")
		assert.Error(t, err)
	})
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown user maps to domain not-found", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewUserService(repo)

		repo.On("GetUser", ctx, "ghost").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Get(ctx, "ghost")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

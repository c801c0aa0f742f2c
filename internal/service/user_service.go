package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	app_errors "membox/backend/internal/errors"
	"membox/backend/internal/model"
	"membox/backend/internal/repository"
)

// UserService manages self-asserted identities. A name is the whole identity:
// no passwords, no verification. The derived id is a convenience partition
// key, not a security boundary.
type UserService struct {
	repo repository.Repository
}

func NewUserService(repo repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// DeriveUserID computes the deterministic user id for a display name: trim,
// lowercase, internal whitespace collapsed to single underscores. The same
// name on another device therefore recovers the same memory partition.
// The flip side is accepted as designed: "Alice" and "ALICE" collide into one
// id, while "Jo Hn" and "jo_hn" also land on the same id.
func DeriveUserID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
}

// Login resolves a name to a user, creating the record on first login.
// Matching is case-insensitive because the id derivation lowercases.
func (s *UserService) Login(ctx context.Context, name string) (*model.User, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", app_errors.ErrValidation)
	}

	id := DeriveUserID(trimmed)
	user, err := s.repo.GetUser(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("could not look up user: %w", err)
	}

	user = &model.User{
		ID:        id,
		Name:      trimmed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	slog.Info("Created new user", "user_id", user.ID)
	return user, nil
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %q", app_errors.ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

// List returns all known users. Logout keeps the user list and their
// sessions; only the acting-user cookie is cleared.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListUsers(ctx)
}

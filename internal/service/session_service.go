package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "membox/backend/internal/errors"
	"membox/backend/internal/model"
	"membox/backend/internal/repository"
)

const (
	defaultSessionTitle = "New Chat"
	titleRuneLimit      = 50
	previewRuneLimit    = 100
)

// SessionService owns conversation metadata. Sessions are stored globally but
// every operation is scoped to the acting user; title and preview are always
// recomputed from the message list.
type SessionService struct {
	repo repository.Repository
}

func NewSessionService(repo repository.Repository) *SessionService {
	return &SessionService{repo: repo}
}

// CreateSession creates an empty session for the user and makes it current.
func (s *SessionService) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %q", app_errors.ErrNotFound, userID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     defaultSessionTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}
	if err := s.repo.SetCurrentSession(ctx, userID, &session.ID); err != nil {
		return nil, fmt.Errorf("could not select new session: %w", err)
	}
	return session, nil
}

// ListSessions returns the user's sessions, most recently updated first.
func (s *SessionService) ListSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	return s.repo.GetSessions(ctx, userID)
}

// GetFullSession returns a session with its messages, enforcing ownership.
func (s *SessionService) GetFullSession(ctx context.Context, userID, sessionID string) (*model.FullSession, error) {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	return &model.FullSession{Session: *session, Messages: messages}, nil
}

// Get returns the session metadata, enforcing ownership.
func (s *SessionService) Get(ctx context.Context, userID, sessionID string) (*model.Session, error) {
	return s.getOwned(ctx, userID, sessionID)
}

// SelectSession marks the session as the user's current one.
func (s *SessionService) SelectSession(ctx context.Context, userID, sessionID string) error {
	if _, err := s.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.repo.SetCurrentSession(ctx, userID, &sessionID)
}

// DeleteSession removes the session. If it was the user's current session the
// most recently updated remaining session takes over, or none if the list is
// now empty. The current pointer never dangles and never crosses users.
func (s *SessionService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if _, err := s.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not load user after delete: %w", err)
	}
	if user.CurrentSessionID == nil || *user.CurrentSessionID != sessionID {
		return nil
	}

	remaining, err := s.repo.GetSessions(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not list remaining sessions: %w", err)
	}
	var fallback *string
	if len(remaining) > 0 {
		fallback = &remaining[0].ID
	}
	return s.repo.SetCurrentSession(ctx, userID, fallback)
}

// RefreshMeta recomputes the derived title and preview from the current
// message list and bumps updated_at. The new updated_at strictly exceeds the
// previous one even when the clock has not advanced.
func (s *SessionService) RefreshMeta(ctx context.Context, session *model.Session) error {
	messages, err := s.repo.GetMessages(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("could not get messages: %w", err)
	}

	title := defaultSessionTitle
	for _, msg := range messages {
		if msg.Role == model.RoleUser {
			title = truncate(msg.Content, titleRuneLimit)
			break
		}
	}
	preview := ""
	if len(messages) > 0 {
		preview = truncate(messages[len(messages)-1].Content, previewRuneLimit)
	}

	updatedAt := time.Now().UTC()
	if !updatedAt.After(session.UpdatedAt) {
		updatedAt = session.UpdatedAt.Add(time.Microsecond)
	}

	if err := s.repo.UpdateSessionMeta(ctx, session.ID, title, preview, updatedAt); err != nil {
		return fmt.Errorf("could not update session metadata: %w", err)
	}
	session.Title = title
	session.Preview = preview
	session.UpdatedAt = updatedAt
	return nil
}

// getOwned loads the session and checks it belongs to the user.
func (s *SessionService) getOwned(ctx context.Context, userID, sessionID string) (*model.Session, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: session %q", app_errors.ErrNotFound, sessionID)
		}
		return nil, err
	}
	if session.UserID != userID {
		slog.Warn("Blocked cross-user session access", "session_id", sessionID, "owner", session.UserID, "requester", userID)
		return nil, fmt.Errorf("%w: session %q", app_errors.ErrPermission, sessionID)
	}
	return session, nil
}

// truncate shortens a string to n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

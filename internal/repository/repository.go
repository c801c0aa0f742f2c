package repository

import (
	"context"
	"time"

	"membox/backend/internal/model"
)

// Repository defines the interface for data storage operations.
// Persistence is injected through this port so tests can substitute mocks.
type Repository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, userID string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	SetCurrentSession(ctx context.Context, userID string, sessionID *string) error

	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	GetSessions(ctx context.Context, userID string) ([]*model.Session, error)
	UpdateSessionMeta(ctx context.Context, sessionID, title, preview string, updatedAt time.Time) error
	DeleteSession(ctx context.Context, sessionID string) error

	AddMessage(ctx context.Context, message *model.Message) error
	GetMessages(ctx context.Context, sessionID string) ([]model.Message, error)
}

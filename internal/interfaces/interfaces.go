package interfaces

import (
	"context"
	"mime/multipart"

	"membox/backend/internal/model"
	"membox/backend/internal/service"
)

// This file defines the interfaces for our core services. The API layer
// depends on these instead of concrete implementations, which keeps the
// layers decoupled and lets handler tests substitute mocks.

// ChatService defines the contract for the memory-turn pipeline.
type ChatService interface {
	HandleTurn(ctx context.Context, req *service.TurnRequest, streamChan chan<- model.StreamResponse)
}

// SessionService defines the contract for session store operations.
type SessionService interface {
	CreateSession(ctx context.Context, userID string) (*model.Session, error)
	ListSessions(ctx context.Context, userID string) ([]*model.Session, error)
	GetFullSession(ctx context.Context, userID, sessionID string) (*model.FullSession, error)
	SelectSession(ctx context.Context, userID, sessionID string) error
	DeleteSession(ctx context.Context, userID, sessionID string) error
}

// UserService defines the contract for the user identity store.
type UserService interface {
	Login(ctx context.Context, name string) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

// UploadService defines the contract for storing image uploads.
type UploadService interface {
	SaveImages(files []*multipart.FileHeader) ([]string, error)
}

package model

import (
	"time"
)

// User is a self-asserted identity used as the partition key for sessions
// and for the external memory store. There is no authentication behind it.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CurrentSessionID *string   `json:"current_session_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Session stores metadata about a conversation. Title and Preview are always
// derived from the message list, never set by hand.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single message in a session. Images holds the URLs of image
// attachments for the turn that carried them.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FullSession includes the session metadata and all its messages.
type FullSession struct {
	Session
	Messages []Message `json:"messages"`
}

// StreamResponse is the structure for a single chunk in a streaming response.
type StreamResponse struct {
	Content   string `json:"content"`
	Done      bool   `json:"done"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"membox/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := "INSERT INTO users (id, name, current_session_id, created_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.CurrentSessionID, user.CreatedAt)
	return err
}

func (r *sqliteRepository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	query := "SELECT id, name, current_session_id, created_at FROM users WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, userID)

	var user model.User
	var current sql.NullString
	err := row.Scan(&user.ID, &user.Name, &current, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if current.Valid {
		user.CurrentSessionID = &current.String
	}
	return &user, nil
}

func (r *sqliteRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := "SELECT id, name, current_session_id, created_at FROM users ORDER BY created_at ASC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		var current sql.NullString
		if err := rows.Scan(&user.ID, &user.Name, &current, &user.CreatedAt); err != nil {
			return nil, err
		}
		if current.Valid {
			user.CurrentSessionID = &current.String
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *sqliteRepository) SetCurrentSession(ctx context.Context, userID string, sessionID *string) error {
	query := "UPDATE users SET current_session_id = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, sessionID, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sqliteRepository) CreateSession(ctx context.Context, session *model.Session) error {
	query := "INSERT INTO sessions (id, user_id, title, preview, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.Title, session.Preview, session.CreatedAt, session.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	query := "SELECT id, user_id, title, preview, created_at, updated_at FROM sessions WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, sessionID)

	var s model.Session
	err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.Preview, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) GetSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	query := "SELECT id, user_id, title, preview, created_at, updated_at FROM sessions WHERE user_id = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.Preview, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

func (r *sqliteRepository) UpdateSessionMeta(ctx context.Context, sessionID, title, preview string, updatedAt time.Time) error {
	query := "UPDATE sessions SET title = ?, preview = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, title, preview, updatedAt, sessionID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sqliteRepository) DeleteSession(ctx context.Context, sessionID string) error {
	query := "DELETE FROM sessions WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message) error {
	var images sql.NullString
	if len(message.Images) > 0 {
		data, err := json.Marshal(message.Images)
		if err != nil {
			return fmt.Errorf("could not marshal message images: %w", err)
		}
		images.String = string(data)
		images.Valid = true
	}

	query := "INSERT INTO messages (id, session_id, role, content, images, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.SessionID, message.Role, message.Content, images, message.CreatedAt)
	return err
}

func (r *sqliteRepository) GetMessages(ctx context.Context, sessionID string) ([]model.Message, error) {
	query := "SELECT id, session_id, role, content, images, created_at FROM messages WHERE session_id = ? ORDER BY created_at ASC"
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var images sql.NullString
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &images, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if images.Valid {
			if err := json.Unmarshal([]byte(images.String), &msg.Images); err != nil {
				return nil, fmt.Errorf("could not unmarshal message images: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// requireRowAffected turns a zero-row UPDATE/DELETE into ErrNotFound.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

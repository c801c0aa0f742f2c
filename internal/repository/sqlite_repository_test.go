package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membox/backend/internal/model"
	"membox/backend/internal/repository"
)

func setupMockRepo(t *testing.T) (repository.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return repository.NewSQLiteRepository(db), mock
}

func TestSQLiteRepository_GetUser(t *testing.T) {
	t.Run("found with current session", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "name", "current_session_id", "created_at"}).
			AddRow("alice", "Alice", "sess1", now)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, current_session_id, created_at FROM users WHERE id = ?")).
			WithArgs("alice").WillReturnRows(rows)

		user, err := repo.GetUser(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		require.NotNil(t, user.CurrentSessionID)
		assert.Equal(t, "sess1", *user.CurrentSessionID)
	})

	t.Run("found without current session", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		rows := sqlmock.NewRows([]string{"id", "name", "current_session_id", "created_at"}).
			AddRow("bob", "Bob", nil, time.Now().UTC())
		mock.ExpectQuery("SELECT id, name, current_session_id").
			WithArgs("bob").WillReturnRows(rows)

		user, err := repo.GetUser(context.Background(), "bob")
		require.NoError(t, err)
		assert.Nil(t, user.CurrentSessionID)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("SELECT id, name, current_session_id").
			WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUser(context.Background(), "ghost")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSQLiteRepository_SetCurrentSession(t *testing.T) {
	t.Run("set to session", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		sessionID := "sess1"
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET current_session_id = ? WHERE id = ?")).
			WithArgs(&sessionID, "alice").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetCurrentSession(context.Background(), "alice", &sessionID))
	})

	t.Run("clear to null", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectExec("UPDATE users SET current_session_id").
			WithArgs(nil, "alice").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetCurrentSession(context.Background(), "alice", nil))
	})

	t.Run("unknown user maps to ErrNotFound", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectExec("UPDATE users SET current_session_id").
			WithArgs(nil, "ghost").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetCurrentSession(context.Background(), "ghost", nil), repository.ErrNotFound)
	})
}

func TestSQLiteRepository_Sessions(t *testing.T) {
	t.Run("get sessions ordered by recency", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "user_id", "title", "preview", "created_at", "updated_at"}).
			AddRow("sess2", "alice", "Second", "latest", now.Add(-time.Hour), now).
			AddRow("sess1", "alice", "First", "older", now.Add(-2*time.Hour), now.Add(-time.Hour))
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY updated_at DESC")).
			WithArgs("alice").WillReturnRows(rows)

		sessions, err := repo.GetSessions(context.Background(), "alice")
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, "sess2", sessions[0].ID)
	})

	t.Run("update meta on missing session", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectExec("UPDATE sessions SET title").
			WithArgs("t", "p", sqlmock.AnyArg(), "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSessionMeta(context.Background(), "ghost", "t", "p", time.Now().UTC())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete session", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE id = ?")).
			WithArgs("sess1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteSession(context.Background(), "sess1"))
	})

	t.Run("delete missing session", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectExec("DELETE FROM sessions").
			WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteSession(context.Background(), "ghost"), repository.ErrNotFound)
	})
}

func TestSQLiteRepository_Messages(t *testing.T) {
	t.Run("images stored as JSON", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		msg := &model.Message{
			ID:        "m1",
			SessionID: "sess1",
			Role:      model.RoleUser,
			Content:   "look at this",
			Images:    []string{"http://localhost:8000/uploads/a.png"},
			CreatedAt: time.Now().UTC(),
		}
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages")).
			WithArgs(msg.ID, msg.SessionID, msg.Role, msg.Content,
				sql.NullString{String: `["http://localhost:8000/uploads/a.png"]`, Valid: true},
				msg.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.AddMessage(context.Background(), msg))
	})

	t.Run("text message stores null images", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		msg := &model.Message{ID: "m2", SessionID: "sess1", Role: model.RoleAssistant, Content: "hi", CreatedAt: time.Now().UTC()}
		mock.ExpectExec("INSERT INTO messages").
			WithArgs(msg.ID, msg.SessionID, msg.Role, msg.Content, sql.NullString{}, msg.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.AddMessage(context.Background(), msg))
	})

	t.Run("round-trips image lists", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "session_id", "role", "content", "images", "created_at"}).
			AddRow("m1", "sess1", "user", "look", `["http://localhost:8000/uploads/a.png"]`, now).
			AddRow("m2", "sess1", "assistant", "nice", nil, now.Add(time.Second))
		mock.ExpectQuery(regexp.QuoteMeta("FROM messages WHERE session_id = ?")).
			WithArgs("sess1").WillReturnRows(rows)

		messages, err := repo.GetMessages(context.Background(), "sess1")
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, []string{"http://localhost:8000/uploads/a.png"}, messages[0].Images)
		assert.Nil(t, messages[1].Images)
	})

	t.Run("query failure surfaces", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("FROM messages").
			WithArgs("sess1").WillReturnError(errors.New("disk I/O error"))

		_, err := repo.GetMessages(context.Background(), "sess1")
		assert.Error(t, err)
	})
}

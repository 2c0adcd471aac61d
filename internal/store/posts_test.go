package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	gdb, mock := setupMockDB(t)
	posts := NewPostStore(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "posts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	post, err := posts.Create("Hi", "World", "", "user-1")
	require.NoError(t, err)

	assert.Len(t, post.ID, 36)
	assert.Equal(t, "Hi", post.Title)
	assert.Equal(t, "user-1", post.CreatorID)
	assert.False(t, post.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostAcceptsEmptyFields(t *testing.T) {
	gdb, mock := setupMockDB(t)
	posts := NewPostStore(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "posts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	post, err := posts.Create("", "", "", "user-1")
	require.NoError(t, err)
	assert.Empty(t, post.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllJoinsCreatorBestEffort(t *testing.T) {
	gdb, mock := setupMockDB(t)
	posts := NewPostStore(gdb)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM "posts" (.*)ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "thumbnail", "creator_id", "created_at"}).
			AddRow("post-2", "Newer", "b", "", "user-1", now).
			AddRow("post-1", "Older", "a", "", "ghost", now.Add(-time.Hour)))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow("user-1", "alice", "a@x.com", "$2a$10$hash", now))

	got, err := posts.ListAll()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Newer", got[0].Title)
	assert.Equal(t, "alice", got[0].Creator.Username)

	// The creator of the older post is gone; the join leaves it blank
	// instead of failing.
	assert.Equal(t, "Older", got[1].Title)
	assert.Empty(t, got[1].Creator.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCreator(t *testing.T) {
	gdb, mock := setupMockDB(t)
	posts := NewPostStore(gdb)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE creator_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "thumbnail", "creator_id", "created_at"}).
			AddRow("post-1", "First", "a", "", "user-1", now.Add(-time.Hour)).
			AddRow("post-2", "Second", "b", "", "user-1", now))

	got, err := posts.ListByCreator("user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Title)
	assert.Equal(t, "Second", got[1].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

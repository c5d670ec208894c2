package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/core/domain"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "session.db")
}

func TestSessionStore_EmptyLoad(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	sess, err := NewSessionStore(db).Load(ctx)

	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTestDB(t))
	require.NoError(t, err)
	defer db.Close()
	store := NewSessionStore(db)

	saved := &domain.Session{
		Token: "tok-1",
		User:  domain.User{ID: "u1", Name: "Анна", Email: "anna@example.com", Points: 150, ModelsCount: 1},
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-1", loaded.Token)
	assert.Equal(t, "Анна", loaded.User.Name)
	assert.Equal(t, 150, loaded.User.Points)

	require.NoError(t, store.Clear(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTestDB(t))
	require.NoError(t, err)
	defer db.Close()
	store := NewSessionStore(db)

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "old", User: domain.User{ID: "u1"}}))
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "new", User: domain.User{ID: "u2"}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", loaded.Token)
	assert.Equal(t, "u2", loaded.User.ID)
}

func TestSessionStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := openTestDB(t)

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSessionStore(db).Save(ctx, &domain.Session{Token: "tok", User: domain.User{ID: "u1"}}))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	loaded, err := NewSessionStore(db).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok", loaded.Token)
}

func TestSessionStore_UnreadableUserIsSignedOut(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO session (key, value) VALUES ('auth_token', 'tok'), ('user_data', '{broken')`)
	require.NoError(t, err)

	loaded, err := NewSessionStore(db).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session`).Scan(&rows))
	assert.Zero(t, rows)
}

func TestSessionStore_SaveEmptyTokenClears(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTestDB(t))
	require.NoError(t, err)
	defer db.Close()
	store := NewSessionStore(db)

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok"}))
	require.NoError(t, store.Save(ctx, &domain.Session{}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"file:/home/u/.printshop/session.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		dsn("/home/u/.printshop/session.db"))
	assert.Equal(t,
		"file:/tmp/a%3Fb%23c.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		dsn("/tmp/a?b#c.db"))
}

func TestOpen_PathWithQueryCharacters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "odd?name#1.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSessionStore(db).Save(ctx, &domain.Session{Token: "tok", User: domain.User{ID: "u1"}}))
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	loaded, err := NewSessionStore(db).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok", loaded.Token)
}

package users

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/siteauth/internal/common"
	"github.com/dmitrijs2005/siteauth/internal/server/migrations"
	"github.com/dmitrijs2005/siteauth/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	goose.SetBaseFS(migrations.SQLite)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "sqlite"))

	return NewSQLiteRepository(db)
}

func TestSQLite_InsertAndFind(t *testing.T) {
	repo := newSQLiteRepo(t)
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 891_234_567, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	created, err := repo.Insert(ctx, &models.User{Username: "alice", Email: "a@x.io", PasswordHash: "hash", Role: "beta"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, fixed.Truncate(time.Millisecond), created.CreatedAt)

	byEmail, err := repo.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, created, byEmail)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)
}

func TestSQLite_NotFound(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "nobody@x.io")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_DuplicateEmail(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, &models.User{Username: "alice", Email: "a@x.io", PasswordHash: "h1", Role: "beta"})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, &models.User{Username: "mallory", Email: "a@x.io", PasswordHash: "h2", Role: "beta"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	u, err := repo.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestSQLite_ConcurrentInsertSameEmail(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Insert(ctx, &models.User{Username: "u", Email: "race@x.io", PasswordHash: "h", Role: "beta"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	}
	assert.Equal(t, 1, ok)
}

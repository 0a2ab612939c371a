package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/library"
	"github.com/libriverse/libriverse/pkg/migrations"
	"github.com/libriverse/libriverse/pkg/models"
	"github.com/libriverse/libriverse/pkg/notes"
	"github.com/libriverse/libriverse/pkg/readinglogs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// An in-memory database exists per connection.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func registerUser(t *testing.T, db *bun.DB, email, password string) *models.User {
	t.Helper()
	user, err := auth.NewService(db, "test-secret", nil).Register(context.Background(), "Test User", email, password)
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string { return &s }

func TestUpdateProfileName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := registerUser(t, db, "ada@example.com", "securepassword123")

	err := svc.UpdateProfile(ctx, user, UpdateProfileOptions{Name: strPtr("Ada Lovelace")})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)

	got := &models.User{}
	require.NoError(t, db.NewSelect().Model(got).Where("u.id = ?", user.ID).Scan(ctx))
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := registerUser(t, db, "ada@example.com", "securepassword123")
	registerUser(t, db, "bob@example.com", "securepassword123")

	err := svc.UpdateProfile(ctx, user, UpdateProfileOptions{Email: strPtr("BOB@example.com")})
	var appErr *errcodes.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode)

	// Re-submitting your own email is not a conflict.
	err = svc.UpdateProfile(ctx, user, UpdateProfileOptions{Email: strPtr("ada@example.com")})
	require.NoError(t, err)
}

func TestUpdateProfilePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := registerUser(t, db, "ada@example.com", "securepassword123")

	// Without the current password the change is rejected.
	err := svc.UpdateProfile(ctx, user, UpdateProfileOptions{Password: strPtr("newpassword456")})
	var appErr *errcodes.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)

	err = svc.UpdateProfile(ctx, user, UpdateProfileOptions{
		Password:        strPtr("newpassword456"),
		CurrentPassword: strPtr("wrongpassword"),
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)

	err = svc.UpdateProfile(ctx, user, UpdateProfileOptions{
		Password:        strPtr("newpassword456"),
		CurrentPassword: strPtr("securepassword123"),
	})
	require.NoError(t, err)

	authSvc := auth.NewService(db, "test-secret", nil)
	_, err = authSvc.Authenticate(ctx, "ada@example.com", "newpassword456")
	assert.NoError(t, err)
	_, err = authSvc.Authenticate(ctx, "ada@example.com", "securepassword123")
	assert.Error(t, err)
}

func TestDeleteAccountCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	ada := registerUser(t, db, "ada@example.com", "securepassword123")
	bob := registerUser(t, db, "bob@example.com", "securepassword123")

	librarySvc := library.NewService(db)
	entry, err := librarySvc.AddBook(ctx, ada.ID, library.AddBookOptions{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	bobEntry, err := librarySvc.AddBook(ctx, bob.ID, library.AddBookOptions{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	_, err = notes.NewService(db).Create(ctx, ada.ID, notes.CreateNoteOptions{
		UserBookID: &entry.ID,
		Content:    "a note",
	})
	require.NoError(t, err)
	_, err = readinglogs.NewService(db).Log(ctx, ada.ID, entry.ID, 10)
	require.NoError(t, err)

	// Wrong password leaves everything in place.
	err = svc.DeleteAccount(ctx, ada, "wrongpassword")
	var appErr *errcodes.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)

	require.NoError(t, svc.DeleteAccount(ctx, ada, "securepassword123"))

	for model, want := range map[interface{}]int{
		(*models.User)(nil):       1,
		(*models.UserBook)(nil):   1,
		(*models.Note)(nil):       0,
		(*models.ReadingLog)(nil): 0,
		// The catalog row is shared and survives.
		(*models.Book)(nil): 1,
	} {
		count, err := db.NewSelect().Model(model).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	// Bob's entry is the one that remains.
	_, err = librarySvc.Retrieve(ctx, bob.ID, bobEntry.ID)
	assert.NoError(t, err)
}

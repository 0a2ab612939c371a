package notes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/library"
	"github.com/libriverse/libriverse/pkg/migrations"
	"github.com/libriverse/libriverse/pkg/models"
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

func createUser(t *testing.T, db *bun.DB, email string) *models.User {
	t.Helper()

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Theme:        models.ThemeLight,
		ViewMode:     models.ViewModeGrid,
	}
	_, err := db.NewInsert().Model(user).Exec(context.Background())
	require.NoError(t, err)
	return user
}

func addEntry(t *testing.T, db *bun.DB, userID int, title string) *models.UserBook {
	t.Helper()
	entry, err := library.NewService(db).AddBook(context.Background(), userID, library.AddBookOptions{
		Title:  title,
		Author: "Frank Herbert",
	})
	require.NoError(t, err)
	return entry
}

func strPtr(s string) *string { return &s }

func TestCreateBookNote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "ada@example.com")
	entry := addEntry(t, db, user.ID, "Dune")

	note, err := svc.Create(ctx, user.ID, CreateNoteOptions{
		UserBookID: &entry.ID,
		Chapter:    strPtr("3"),
		Content:    "Fear is the mind-killer.",
	})
	require.NoError(t, err)
	require.NotNil(t, note.BookID)
	// The stored reference is the catalog book, not the library entry.
	assert.Equal(t, entry.BookID, *note.BookID)
	assert.False(t, note.IsGeneral)
}

func TestCreateGeneralNote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "ada@example.com")

	note, err := svc.Create(ctx, user.ID, CreateNoteOptions{
		Content:   "Read more sci-fi this year.",
		IsGeneral: true,
	})
	require.NoError(t, err)
	assert.Nil(t, note.BookID)
	assert.True(t, note.IsGeneral)
}

func TestCreateNoteRejectsUnownedEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	ada := createUser(t, db, "ada@example.com")
	bob := createUser(t, db, "bob@example.com")
	entry := addEntry(t, db, ada.ID, "Dune")

	// Another user's entry id and a nonexistent id fail identically.
	for _, id := range []string{entry.ID, "00000000-0000-4000-8000-000000000000"} {
		_, err := svc.Create(ctx, bob.ID, CreateNoteOptions{
			UserBookID: &id,
			Content:    "should not work",
		})
		var appErr *errcodes.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.HTTPCode)
	}
}

func TestCreateNoteRequiresBookOrGeneral(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "ada@example.com")

	_, err := svc.Create(ctx, user.ID, CreateNoteOptions{Content: "floating note"})
	var appErr *errcodes.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestListNotesFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "ada@example.com")
	dune := addEntry(t, db, user.ID, "Dune")
	messiah := addEntry(t, db, user.ID, "Dune Messiah")

	_, err := svc.Create(ctx, user.ID, CreateNoteOptions{UserBookID: &dune.ID, Content: "note 1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, user.ID, CreateNoteOptions{UserBookID: &messiah.ID, Content: "note 2"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, user.ID, CreateNoteOptions{Content: "general", IsGeneral: true})
	require.NoError(t, err)

	all, err := svc.List(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := svc.List(ctx, user.ID, &dune.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "note 1", filtered[0].Content)
}

func TestListNotesScopedToUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	ada := createUser(t, db, "ada@example.com")
	bob := createUser(t, db, "bob@example.com")

	_, err := svc.Create(ctx, ada.ID, CreateNoteOptions{Content: "ada's note", IsGeneral: true})
	require.NoError(t, err)

	notes, err := svc.List(ctx, bob.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestUpdateAndDeleteOwnerScoped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	ada := createUser(t, db, "ada@example.com")
	bob := createUser(t, db, "bob@example.com")

	note, err := svc.Create(ctx, ada.ID, CreateNoteOptions{Content: "original", IsGeneral: true})
	require.NoError(t, err)

	// Other users can neither load nor delete it; both read as absent.
	_, err = svc.Retrieve(ctx, bob.ID, note.ID)
	var appErr *errcodes.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)

	err = svc.Delete(ctx, bob.ID, note.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)

	note.Content = "edited"
	require.NoError(t, svc.Update(ctx, note, UpdateNoteOptions{Columns: []string{"content"}}))

	got, err := svc.Retrieve(ctx, ada.ID, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	require.NoError(t, svc.Delete(ctx, ada.ID, note.ID))
	_, err = svc.Retrieve(ctx, ada.ID, note.ID)
	assert.Error(t, err)
}

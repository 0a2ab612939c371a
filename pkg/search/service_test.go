package search

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
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

func insertBook(t *testing.T, db *bun.DB, title, author string, isbn *string) *models.Book {
	t.Helper()

	now := time.Now()
	book := &models.Book{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ISBN:      isbn,
		Title:     title,
		Author:    author,
	}
	_, err := db.NewInsert().Model(book).Exec(context.Background())
	require.NoError(t, err)
	return book
}

func strPtr(s string) *string { return &s }

func TestSearchCatalog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)

	insertBook(t, db, "Dune", "Frank Herbert", strPtr("9780441172719"))
	insertBook(t, db, "Dune Messiah", "Frank Herbert", nil)
	insertBook(t, db, "Neuromancer", "William Gibson", nil)

	books, total, err := svc.SearchCatalog(ctx, "dune", 25, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Dune Messiah", books[1].Title)

	// Author matches too.
	_, total, err = svc.SearchCatalog(ctx, "gibson", 25, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// ISBN substring.
	_, total, err = svc.SearchCatalog(ctx, "9780441", 25, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestSearchCatalogBlankQuery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)

	insertBook(t, db, "Dune", "Frank Herbert", nil)

	books, total, err := svc.SearchCatalog(ctx, "   ", 25, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, books)
}

func TestSearchCatalogLiteralWildcards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)

	insertBook(t, db, "100% Wolf", "Jayne Lyons", nil)
	insertBook(t, db, "1000 Wolves", "Someone Else", nil)

	// "%" must not act as a wildcard.
	books, total, err := svc.SearchCatalog(ctx, "100%", 25, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, "100% Wolf", books[0].Title)
}

func TestSearchCatalogPagination(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)

	insertBook(t, db, "Dune", "Frank Herbert", nil)
	insertBook(t, db, "Dune Messiah", "Frank Herbert", nil)
	insertBook(t, db, "Children of Dune", "Frank Herbert", nil)

	books, total, err := svc.SearchCatalog(ctx, "dune", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, books, 2)

	books, _, err = svc.SearchCatalog(ctx, "dune", 2, 2)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

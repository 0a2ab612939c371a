package settings

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

func createUser(t *testing.T, db *bun.DB) *models.User {
	t.Helper()

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         "Test User",
		Email:        "ada@example.com",
		PasswordHash: "not-a-real-hash",
		Theme:        models.ThemeLight,
		ViewMode:     models.ViewModeGrid,
	}
	_, err := db.NewInsert().Model(user).Exec(context.Background())
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string { return &s }

func TestGetDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db)

	prefs, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, prefs.Theme)
	assert.Equal(t, models.ViewModeGrid, prefs.ViewMode)
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db)

	prefs, err := svc.Update(ctx, user.ID, UpdateOptions{Theme: strPtr(models.ThemeDark)})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, prefs.Theme)
	assert.Equal(t, models.ViewModeGrid, prefs.ViewMode)

	prefs, err = svc.Update(ctx, user.ID, UpdateOptions{ViewMode: strPtr(models.ViewModeList)})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, prefs.Theme)
	assert.Equal(t, models.ViewModeList, prefs.ViewMode)
}

func TestUpdateNoFieldsIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db)

	prefs, err := svc.Update(ctx, user.ID, UpdateOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, prefs.Theme)
	assert.Equal(t, models.ViewModeGrid, prefs.ViewMode)
}

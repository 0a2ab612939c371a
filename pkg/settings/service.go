package settings

import (
	"context"
	"database/sql"
	"time"

	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles per-user display preferences.
type Service struct {
	db *bun.DB
}

// NewService creates a new settings service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// Preferences is the display-preference slice of a user record.
type Preferences struct {
	Theme    string `json:"theme"`
	ViewMode string `json:"view_mode"`
}

// Get returns the user's preferences.
func (s *Service) Get(ctx context.Context, userID int) (*Preferences, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Column("u.theme", "u.view_mode").
		Where("u.id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("User")
		}
		return nil, errors.WithStack(err)
	}

	return &Preferences{Theme: user.Theme, ViewMode: user.ViewMode}, nil
}

// UpdateOptions contains the preference fields to change. Nil fields are
// left untouched.
type UpdateOptions struct {
	Theme    *string
	ViewMode *string
}

// Update patches the user's preferences and returns the result.
func (s *Service) Update(ctx context.Context, userID int, opts UpdateOptions) (*Preferences, error) {
	user := &models.User{ID: userID, UpdatedAt: time.Now()}

	columns := []string{}
	if opts.Theme != nil {
		user.Theme = *opts.Theme
		columns = append(columns, "theme")
	}
	if opts.ViewMode != nil {
		user.ViewMode = *opts.ViewMode
		columns = append(columns, "view_mode")
	}

	if len(columns) > 0 {
		columns = append(columns, "updated_at")
		_, err := s.db.NewUpdate().
			Model(user).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return s.Get(ctx, userID)
}

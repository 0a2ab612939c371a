package users

import (
	"context"
	"time"

	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles user profile operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new users service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// UpdateProfileOptions contains the profile fields to change. Nil fields
// are left untouched. A password change carries the current password.
type UpdateProfileOptions struct {
	Name            *string
	Email           *string
	Password        *string
	CurrentPassword *string
}

// UpdateProfile patches the user's profile. Email changes re-check
// uniqueness; password changes require the current password.
func (s *Service) UpdateProfile(ctx context.Context, user *models.User, opts UpdateProfileOptions) error {
	columns := []string{}

	if opts.Name != nil {
		user.Name = *opts.Name
		columns = append(columns, "name")
	}

	if opts.Email != nil && *opts.Email != user.Email {
		exists, err := s.db.NewSelect().
			Model((*models.User)(nil)).
			Where("email = ? COLLATE NOCASE", *opts.Email).
			Where("id != ?", user.ID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			return errcodes.Conflict("An account with this email already exists.")
		}
		user.Email = *opts.Email
		columns = append(columns, "email")
	}

	if opts.Password != nil {
		if opts.CurrentPassword == nil || !auth.CheckPassword(*opts.CurrentPassword, user.PasswordHash) {
			return errcodes.ValidationError("Current password is incorrect.")
		}
		hashedPassword, err := auth.HashPassword(*opts.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hashedPassword
		columns = append(columns, "password_hash")
	}

	if len(columns) == 0 {
		return nil
	}

	user.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err := s.db.NewUpdate().
		Model(user).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteAccount verifies the password and hard-deletes the user. Foreign
// keys cascade the user's library entries, notes, and reading logs; the
// shared catalog is untouched.
func (s *Service) DeleteAccount(ctx context.Context, user *models.User, password string) error {
	if !auth.CheckPassword(password, user.PasswordHash) {
		return errcodes.ValidationError("Password is incorrect.")
	}

	_, err := s.db.NewDelete().
		Model(user).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

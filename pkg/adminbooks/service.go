package adminbooks

import (
	"context"
	"database/sql"

	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles the admin-only legacy catalog.
type Service struct {
	db *bun.DB
}

// NewService creates a new admin books service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// List returns legacy catalog rows, oldest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.LegacyBook, int, error) {
	books := []models.LegacyBook{}

	total, err := s.db.NewSelect().
		Model(&books).
		Order("lb.id ASC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

// Retrieve returns a single legacy row.
func (s *Service) Retrieve(ctx context.Context, id int) (*models.LegacyBook, error) {
	book := &models.LegacyBook{}
	err := s.db.NewSelect().
		Model(book).
		Where("lb.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}
	return book, nil
}

// UpdateOptions contains options for updating a legacy row.
type UpdateOptions struct {
	Columns []string
}

// Update persists the given columns of an already-loaded legacy row.
func (s *Service) Update(ctx context.Context, book *models.LegacyBook, opts UpdateOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	_, err := s.db.NewUpdate().
		Model(book).
		Column(opts.Columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Delete removes a legacy row.
func (s *Service) Delete(ctx context.Context, id int) error {
	res, err := s.db.NewDelete().
		Model((*models.LegacyBook)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if rows == 0 {
		return errcodes.NotFound("Book")
	}

	return nil
}

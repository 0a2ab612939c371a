package notes

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles note operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new notes service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// CreateNoteOptions contains options for creating a note.
type CreateNoteOptions struct {
	UserBookID *string
	Chapter    *string
	Page       *int
	Content    string
	IsGeneral  bool
}

// Create creates a note. A note that references a book does so through
// one of the caller's own library entries; the entry is resolved to its
// catalog book here. Entry ids that don't exist for the caller are
// rejected the same way whether they are unknown or owned by someone else.
func (s *Service) Create(ctx context.Context, userID int, opts CreateNoteOptions) (*models.Note, error) {
	var bookID *string

	switch {
	case opts.UserBookID != nil && *opts.UserBookID != "":
		id, err := s.resolveEntryBookID(ctx, userID, *opts.UserBookID)
		if err != nil {
			return nil, err
		}
		bookID = &id
	case !opts.IsGeneral:
		return nil, errcodes.ValidationError("A note must reference a library entry or be general.")
	}

	now := time.Now()
	note := &models.Note{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
		BookID:    bookID,
		Chapter:   opts.Chapter,
		Page:      opts.Page,
		Content:   opts.Content,
		IsGeneral: opts.IsGeneral || bookID == nil,
	}

	_, err := s.db.NewInsert().Model(note).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return note, nil
}

// List returns the user's notes, newest first. When userBookID is given,
// only notes attached to that entry's catalog book are returned.
func (s *Service) List(ctx context.Context, userID int, userBookID *string) ([]models.Note, error) {
	notes := []models.Note{}
	q := s.db.NewSelect().
		Model(&notes).
		Where("n.user_id = ?", userID).
		Order("n.created_at DESC")

	if userBookID != nil && *userBookID != "" {
		bookID, err := s.resolveEntryBookID(ctx, userID, *userBookID)
		if err != nil {
			return nil, err
		}
		q = q.Where("n.book_id = ?", bookID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return notes, nil
}

// Retrieve returns a single owned note.
func (s *Service) Retrieve(ctx context.Context, userID int, id string) (*models.Note, error) {
	note := &models.Note{}
	err := s.db.NewSelect().
		Model(note).
		Where("n.id = ?", id).
		Where("n.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Note")
		}
		return nil, errors.WithStack(err)
	}
	return note, nil
}

// UpdateNoteOptions contains options for updating a note.
type UpdateNoteOptions struct {
	Columns []string
}

// Update persists the given columns of an already-loaded note.
func (s *Service) Update(ctx context.Context, note *models.Note, opts UpdateNoteOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	note.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := s.db.NewUpdate().
		Model(note).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Delete removes an owned note.
func (s *Service) Delete(ctx context.Context, userID int, id string) error {
	res, err := s.db.NewDelete().
		Model((*models.Note)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if rows == 0 {
		return errcodes.NotFound("Note")
	}

	return nil
}

// resolveEntryBookID maps one of the caller's library-entry ids to its
// catalog book id. The lookup is owner-scoped; a miss is a validation
// error, not a 404, because the id arrived in a payload rather than a
// path.
func (s *Service) resolveEntryBookID(ctx context.Context, userID int, userBookID string) (string, error) {
	entry := &models.UserBook{}
	err := s.db.NewSelect().
		Model(entry).
		Column("ub.book_id").
		Where("ub.id = ?", userBookID).
		Where("ub.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errcodes.ValidationError("Unknown library entry.")
		}
		return "", errors.WithStack(err)
	}
	return entry.BookID, nil
}

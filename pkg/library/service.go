package library

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/models"
	"github.com/libriverse/libriverse/pkg/search"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles library entries and the shared catalog behind them.
type Service struct {
	db *bun.DB
}

// NewService creates a new library service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// AddBookOptions contains options for adding a book to a user's library.
type AddBookOptions struct {
	ISBN      *string
	Title     string
	Author    string
	Publisher *string
	CoverURL  *string
	PageCount *int
	Language  *string

	CustomCoverURL *string
	IsRead         bool
	CurrentPage    int
	PurchaseDate   *string
	PurchasePrice  *float64
	LoanedTo       *string
	LoanDate       *string
}

// AddBook adds a book to the user's library, resolving it against the
// shared catalog first: an isbn match wins, then a case-insensitive
// title+author match, and only then is a new catalog row created. The
// resolve and the link happen in one transaction, so a rejected link never
// leaves an orphaned catalog row behind.
func (svc *Service) AddBook(ctx context.Context, userID int, opts AddBookOptions) (*models.UserBook, error) {
	entry, err := svc.addBookOnce(ctx, userID, opts)
	if err != nil && isUniqueViolation(err, "books") {
		// Lost a race creating the catalog row; it exists now, so the
		// resolver will find it on the second pass.
		entry, err = svc.addBookOnce(ctx, userID, opts)
	}
	return entry, err
}

func (svc *Service) addBookOnce(ctx context.Context, userID int, opts AddBookOptions) (*models.UserBook, error) {
	entry := &models.UserBook{}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book, err := resolveCatalogBook(ctx, tx, opts)
		if err != nil {
			return err
		}

		now := time.Now()
		*entry = models.UserBook{
			ID:             uuid.NewString(),
			CreatedAt:      now,
			UpdatedAt:      now,
			UserID:         userID,
			BookID:         book.ID,
			CustomCoverURL: opts.CustomCoverURL,
			IsRead:         opts.IsRead,
			CurrentPage:    opts.CurrentPage,
			PurchaseDate:   opts.PurchaseDate,
			PurchasePrice:  opts.PurchasePrice,
			LoanedTo:       opts.LoanedTo,
			LoanDate:       opts.LoanDate,
		}

		_, err = tx.NewInsert().Model(entry).Exec(ctx)
		if err != nil {
			if isUniqueViolation(err, "user_books") {
				return errcodes.Conflict("This book is already in your library.")
			}
			return errors.WithStack(err)
		}

		entry.Book = book
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// resolveCatalogBook finds the catalog row the submission refers to, or
// creates one. Title/author matching is literal and case-insensitive; LIKE
// metacharacters in the submitted values never act as wildcards.
func resolveCatalogBook(ctx context.Context, tx bun.Tx, opts AddBookOptions) (*models.Book, error) {
	book := &models.Book{}

	if isbn := nonEmpty(opts.ISBN); isbn != nil {
		err := tx.NewSelect().
			Model(book).
			Where("b.isbn = ?", *isbn).
			Scan(ctx)
		if err == nil {
			return book, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, errors.WithStack(err)
		}
	}

	err := tx.NewSelect().
		Model(book).
		Where(`b.title LIKE ? ESCAPE '\'`, search.EscapeLike(opts.Title)).
		Where(`b.author LIKE ? ESCAPE '\'`, search.EscapeLike(opts.Author)).
		Order("b.created_at ASC").
		Limit(1).
		Scan(ctx)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithStack(err)
	}

	now := time.Now()
	book = &models.Book{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ISBN:      nonEmpty(opts.ISBN),
		Title:     opts.Title,
		Author:    opts.Author,
		Publisher: opts.Publisher,
		CoverURL:  opts.CoverURL,
		PageCount: opts.PageCount,
		Language:  opts.Language,
	}
	_, err = tx.NewInsert().Model(book).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// List returns the user's library entries with their catalog books.
func (svc *Service) List(ctx context.Context, userID, limit, offset int) ([]models.UserBook, int, error) {
	entries := []models.UserBook{}

	total, err := svc.db.NewSelect().
		Model(&entries).
		Relation("Book").
		Where("ub.user_id = ?", userID).
		Order("ub.created_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return entries, total, nil
}

// Retrieve returns a single owned entry. Entries belonging to other users
// are reported as not found.
func (svc *Service) Retrieve(ctx context.Context, userID int, id string) (*models.UserBook, error) {
	entry := &models.UserBook{}
	err := svc.db.NewSelect().
		Model(entry).
		Relation("Book").
		Where("ub.id = ?", id).
		Where("ub.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}
	return entry, nil
}

// UpdateEntryOptions contains options for updating a library entry.
type UpdateEntryOptions struct {
	Columns []string
}

// Update persists the given columns of an already-loaded entry. Catalog
// fields are shared and are never written through here.
func (svc *Service) Update(ctx context.Context, entry *models.UserBook, opts UpdateEntryOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	entry.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.NewUpdate().
		Model(entry).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Delete removes an owned entry. The catalog row stays for other users.
func (svc *Service) Delete(ctx context.Context, userID int, id string) error {
	res, err := svc.db.NewDelete().
		Model((*models.UserBook)(nil)).
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
		return errcodes.NotFound("Book")
	}

	return nil
}

func isUniqueViolation(err error, table string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+table)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

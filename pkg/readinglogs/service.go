package readinglogs

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

// Service handles reading progress logging.
type Service struct {
	db *bun.DB
}

// NewService creates a new reading logs service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// Log records a reading session for one of the caller's library entries
// and advances the entry's current page. The log row and the entry update
// happen in one transaction. Logs are append-only; corrections are new
// sessions with zero pages_read.
func (s *Service) Log(ctx context.Context, userID int, userBookID string, currentPage int) (*models.ReadingLog, error) {
	log := &models.ReadingLog{}

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		entry := &models.UserBook{}
		err := tx.NewSelect().
			Model(entry).
			Relation("Book").
			Where("ub.id = ?", userBookID).
			Where("ub.user_id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}

		previous := entry.CurrentPage
		pagesRead := currentPage - previous
		if pagesRead < 0 {
			// Going backwards is allowed but never counts negative pages.
			pagesRead = 0
		}

		percentage := 0.0
		var pageCount int
		if entry.Book != nil && entry.Book.PageCount != nil {
			pageCount = *entry.Book.PageCount
		}
		if pageCount > 0 {
			percentage = float64(currentPage) / float64(pageCount) * 100
			if percentage > 100 {
				percentage = 100
			}
		}

		*log = models.ReadingLog{
			ID:           uuid.NewString(),
			CreatedAt:    time.Now(),
			UserID:       userID,
			UserBookID:   entry.ID,
			PreviousPage: previous,
			CurrentPage:  currentPage,
			PagesRead:    pagesRead,
			Percentage:   percentage,
		}

		_, err = tx.NewInsert().Model(log).Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		entry.CurrentPage = currentPage
		entry.UpdatedAt = time.Now()
		columns := []string{"current_page", "updated_at"}
		if pageCount > 0 && currentPage >= pageCount && !entry.IsRead {
			entry.IsRead = true
			columns = append(columns, "is_read")
		}

		_, err = tx.NewUpdate().
			Model(entry).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return log, nil
}

// List returns the logs for one of the caller's entries, newest first.
func (s *Service) List(ctx context.Context, userID int, userBookID string) ([]models.ReadingLog, error) {
	exists, err := s.db.NewSelect().
		Model((*models.UserBook)(nil)).
		Where("id = ?", userBookID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !exists {
		return nil, errcodes.NotFound("Book")
	}

	logs := []models.ReadingLog{}
	err = s.db.NewSelect().
		Model(&logs).
		Where("rl.user_book_id = ?", userBookID).
		Order("rl.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return logs, nil
}

package search

import (
	"context"

	"github.com/libriverse/libriverse/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const defaultSearchLimit = 25

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// SearchCatalog searches the shared catalog by title, author, or ISBN.
// Matching is a case-insensitive substring match; a blank query matches
// nothing.
func (svc *Service) SearchCatalog(ctx context.Context, query string, limit, offset int) ([]models.Book, int, error) {
	pattern := BuildContainsPattern(query)
	if pattern == "" {
		return []models.Book{}, 0, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	match := func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where(`b.title LIKE ? ESCAPE '\'`, pattern).
			WhereOr(`b.author LIKE ? ESCAPE '\'`, pattern).
			WhereOr(`b.isbn LIKE ? ESCAPE '\'`, pattern)
	}

	books := []models.Book{}
	err := svc.db.NewSelect().
		Model(&books).
		WhereGroup(" AND ", match).
		Order("b.title ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	total, err := svc.db.NewSelect().
		Model((*models.Book)(nil)).
		WhereGroup(" AND ", match).
		Count(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

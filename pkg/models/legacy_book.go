package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LegacyBook is a row from the earlier, non-deduplicated per-user schema.
// It is kept as a parallel entity and only served through the admin
// catalog endpoints.
type LegacyBook struct {
	bun.BaseModel `bun:"table:legacy_books,alias:lb"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      *int      `json:"user_id"`
	Title       string    `bun:",nullzero" json:"title"`
	Author      string    `bun:",nullzero" json:"author"`
	Publisher   *string   `json:"publisher"`
	CoverURL    *string   `json:"cover_url"`
	IsRead      bool      `json:"is_read"`
	CurrentPage int       `json:"current_page"`
}

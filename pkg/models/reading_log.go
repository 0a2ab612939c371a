package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ReadingLog is an append-only record of a page-progress change on a
// library entry. Rows are never updated or deleted by the application.
type ReadingLog struct {
	bun.BaseModel `bun:"table:reading_logs,alias:rl"`

	ID           string    `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       int       `bun:",nullzero" json:"user_id"`
	UserBookID   string    `bun:",nullzero" json:"user_book_id"`
	PreviousPage int       `json:"previous_page"`
	CurrentPage  int       `json:"current_page"`
	PagesRead    int       `json:"pages_read"`
	Percentage   float64   `json:"percentage"`
}

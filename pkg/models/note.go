package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Note is a user's annotation, optionally tied to a catalog book. The
// book reference is always resolved server-side through a library entry
// the author owns; a client-supplied catalog id is never trusted
// directly.
type Note struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    int       `bun:",nullzero" json:"user_id"`
	BookID    *string   `json:"book_id"`
	Chapter   *string   `json:"chapter"`
	Page      *int      `json:"page"`
	Content   string    `bun:",nullzero" json:"content"`
	IsGeneral bool      `json:"is_general"`

	Book *Book `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
}

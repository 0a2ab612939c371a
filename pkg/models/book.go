package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a shared global catalog entry. It is created lazily the first
// time any user adds a book the catalog doesn't know about, and is shared
// by every library entry that references it. Its identity (isbn, or
// title+author) is the basis for deduplication and never changes.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ISBN      *string   `bun:"isbn" json:"isbn"`
	Title     string    `bun:",nullzero" json:"title"`
	Author    string    `bun:",nullzero" json:"author"`
	Publisher *string   `json:"publisher"`
	CoverURL  *string   `json:"cover_url"`
	PageCount *int      `json:"page_count"`
	Language  *string   `json:"language"`
}

// UserBook is a single user's library entry. It references a catalog Book
// and carries the owner-specific state; deleting it never touches the
// catalog row. UNIQUE(user_id, book_id) keeps a book in a library at most
// once.
type UserBook struct {
	bun.BaseModel `bun:"table:user_books,alias:ub"`

	ID             string    `bun:",pk,nullzero" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         int       `bun:",nullzero" json:"user_id"`
	BookID         string    `bun:",nullzero" json:"book_id"`
	CustomCoverURL *string   `json:"custom_cover_url"`
	IsRead         bool      `json:"is_read"`
	CurrentPage    int       `json:"current_page"`
	PurchaseDate   *string   `json:"purchase_date"`
	PurchasePrice  *float64  `json:"purchase_price"`
	LoanedTo       *string   `json:"loaned_to"`
	LoanDate       *string   `json:"loan_date"`

	Book *Book `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
}

// DisplayCoverURL returns the owner's custom cover when set, falling back
// to the catalog cover.
func (ub *UserBook) DisplayCoverURL() *string {
	if ub.CustomCoverURL != nil && *ub.CustomCoverURL != "" {
		return ub.CustomCoverURL
	}
	if ub.Book != nil {
		return ub.Book.CoverURL
	}
	return nil
}

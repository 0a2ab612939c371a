package library

import (
	"time"

	"github.com/libriverse/libriverse/pkg/models"
)

// CreateBookPayload is the payload for adding a book to the library.
// Catalog fields only matter when the book isn't in the catalog yet.
type CreateBookPayload struct {
	ISBN      *string `json:"isbn" mod:"trim" validate:"omitempty,max=20"`
	Title     string  `json:"title" mod:"trim" validate:"required,max=500"`
	Author    string  `json:"author" mod:"trim" validate:"required,max=500"`
	Publisher *string `json:"publisher" mod:"trim" validate:"omitempty,max=200"`
	CoverURL  *string `json:"cover_url" mod:"trim" validate:"omitempty,max=2000"`
	PageCount *int    `json:"page_count" validate:"omitempty,min=1"`
	Language  *string `json:"language" mod:"trim" validate:"omitempty,max=50"`

	CustomCoverURL *string  `json:"custom_cover_url" mod:"trim" validate:"omitempty,max=2000"`
	IsRead         bool     `json:"is_read"`
	CurrentPage    int      `json:"current_page" validate:"min=0"`
	PurchaseDate   *string  `json:"purchase_date" validate:"omitempty,date"`
	PurchasePrice  *float64 `json:"purchase_price" validate:"omitempty,min=0"`
	LoanedTo       *string  `json:"loaned_to" mod:"trim" validate:"omitempty,max=200"`
	LoanDate       *string  `json:"loan_date" validate:"omitempty,date"`
}

// UpdateBookPayload is the payload for updating a library entry. All
// fields are optional; only the ones present are written.
type UpdateBookPayload struct {
	CustomCoverURL *string  `json:"custom_cover_url" mod:"trim" validate:"omitempty,max=2000"`
	IsRead         *bool    `json:"is_read"`
	CurrentPage    *int     `json:"current_page" validate:"omitempty,min=0"`
	PurchaseDate   *string  `json:"purchase_date" validate:"omitempty,date"`
	PurchasePrice  *float64 `json:"purchase_price" validate:"omitempty,min=0"`
	LoanedTo       *string  `json:"loaned_to" mod:"trim" validate:"omitempty,max=200"`
	LoanDate       *string  `json:"loan_date" validate:"omitempty,date"`
}

// ListBooksQuery represents the query parameters for listing the library.
type ListBooksQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=200"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

// EntryResponse is the merged view of a library entry and its catalog
// book: catalog display fields plus owner-specific state.
type EntryResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	BookID    string    `json:"book_id"`

	ISBN      *string `json:"isbn"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Publisher *string `json:"publisher"`
	CoverURL  *string `json:"cover_url"`
	PageCount *int    `json:"page_count"`
	Language  *string `json:"language"`

	CustomCoverURL  *string  `json:"custom_cover_url"`
	DisplayCoverURL *string  `json:"display_cover_url"`
	IsRead          bool     `json:"is_read"`
	CurrentPage     int      `json:"current_page"`
	PurchaseDate    *string  `json:"purchase_date"`
	PurchasePrice   *float64 `json:"purchase_price"`
	LoanedTo        *string  `json:"loaned_to"`
	LoanDate        *string  `json:"loan_date"`
}

// ListBooksResponse represents the response from listing the library.
type ListBooksResponse struct {
	Books []EntryResponse `json:"books"`
	Total int             `json:"total"`
}

// NewEntryResponse builds the merged view for an entry with its Book
// relation loaded.
func NewEntryResponse(entry *models.UserBook) EntryResponse {
	resp := EntryResponse{
		ID:              entry.ID,
		CreatedAt:       entry.CreatedAt,
		UpdatedAt:       entry.UpdatedAt,
		BookID:          entry.BookID,
		CustomCoverURL:  entry.CustomCoverURL,
		DisplayCoverURL: entry.DisplayCoverURL(),
		IsRead:          entry.IsRead,
		CurrentPage:     entry.CurrentPage,
		PurchaseDate:    entry.PurchaseDate,
		PurchasePrice:   entry.PurchasePrice,
		LoanedTo:        entry.LoanedTo,
		LoanDate:        entry.LoanDate,
	}

	if entry.Book != nil {
		resp.ISBN = entry.Book.ISBN
		resp.Title = entry.Book.Title
		resp.Author = entry.Book.Author
		resp.Publisher = entry.Book.Publisher
		resp.CoverURL = entry.Book.CoverURL
		resp.PageCount = entry.Book.PageCount
		resp.Language = entry.Book.Language
	}

	return resp
}

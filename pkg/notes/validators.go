package notes

// CreateNotePayload is the payload for creating a note. The book, when
// present, is referenced by the caller's library-entry id, never by a raw
// catalog id.
type CreateNotePayload struct {
	UserBookID *string `json:"user_book_id" mod:"trim" validate:"omitempty,uuid4"`
	Chapter    *string `json:"chapter" mod:"trim" validate:"omitempty,max=200"`
	Page       *int    `json:"page" validate:"omitempty,min=0"`
	Content    string  `json:"content" validate:"required,max=10000"`
	IsGeneral  bool    `json:"is_general"`
}

// UpdateNotePayload is the payload for updating a note. Only the fields
// present are written; the note's book reference is immutable.
type UpdateNotePayload struct {
	Chapter *string `json:"chapter" mod:"trim" validate:"omitempty,max=200"`
	Page    *int    `json:"page" validate:"omitempty,min=0"`
	Content *string `json:"content" validate:"omitempty,min=1,max=10000"`
}

// ListNotesQuery represents the query parameters for listing notes.
type ListNotesQuery struct {
	UserBookID *string `query:"user_book_id" json:"user_book_id,omitempty" validate:"omitempty,uuid4"`
}

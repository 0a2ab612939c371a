package readinglogs

import "github.com/libriverse/libriverse/pkg/models"

// CreateReadingLogPayload is the payload for recording a reading session.
type CreateReadingLogPayload struct {
	UserBookID  string `json:"user_book_id" mod:"trim" validate:"required,uuid4"`
	CurrentPage int    `json:"current_page" validate:"min=0"`
}

// ListReadingLogsQuery represents the query parameters for listing logs.
type ListReadingLogsQuery struct {
	UserBookID string `query:"user_book_id" json:"user_book_id" validate:"required,uuid4"`
}

// ListReadingLogsResponse represents the response from listing logs.
type ListReadingLogsResponse struct {
	ReadingLogs []models.ReadingLog `json:"reading_logs"`
}

package adminbooks

import "github.com/libriverse/libriverse/pkg/models"

// UpdateLegacyBookPayload is the payload for patching a legacy row. Only
// the fields present are written.
type UpdateLegacyBookPayload struct {
	Title       *string `json:"title" mod:"trim" validate:"omitempty,min=1,max=500"`
	Author      *string `json:"author" mod:"trim" validate:"omitempty,min=1,max=500"`
	Publisher   *string `json:"publisher" mod:"trim" validate:"omitempty,max=200"`
	CoverURL    *string `json:"cover_url" mod:"trim" validate:"omitempty,max=2000"`
	IsRead      *bool   `json:"is_read"`
	CurrentPage *int    `json:"current_page" validate:"omitempty,min=0"`
}

// ListLegacyBooksQuery represents the query parameters for listing the
// legacy catalog.
type ListLegacyBooksQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=200"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

// ListLegacyBooksResponse represents the response from listing the legacy
// catalog.
type ListLegacyBooksResponse struct {
	Books []models.LegacyBook `json:"books"`
	Total int                 `json:"total"`
}

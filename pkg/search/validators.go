package search

import "github.com/libriverse/libriverse/pkg/models"

// CatalogSearchQuery represents the query parameters for catalog search.
type CatalogSearchQuery struct {
	Query  string `query:"q" json:"q,omitempty" validate:"omitempty,max=100"`
	Limit  int    `query:"limit" json:"limit,omitempty" default:"25" validate:"min=1,max=100"`
	Offset int    `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

// CatalogSearchResponse represents the response from catalog search.
type CatalogSearchResponse struct {
	Books []models.Book `json:"books"`
	Total int           `json:"total"`
}

package search

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type handler struct {
	searchService *Service
}

// searchCatalog handles GET /books/search.
func (h *handler) searchCatalog(c echo.Context) error {
	ctx := c.Request().Context()

	params := CatalogSearchQuery{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	books, total, err := h.searchService.SearchCatalog(ctx, params.Query, params.Limit, params.Offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CatalogSearchResponse{
		Books: books,
		Total: total,
	})
}

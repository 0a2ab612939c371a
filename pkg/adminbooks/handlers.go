package adminbooks

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/errcodes"
)

type handler struct {
	adminBooksService *Service
}

// list handles GET /admin/books.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListLegacyBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	books, total, err := h.adminBooksService.List(ctx, params.Limit, params.Offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListLegacyBooksResponse{
		Books: books,
		Total: total,
	})
}

// update handles PUT /admin/books/:id.
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateLegacyBookPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	book, err := h.adminBooksService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	columns := []string{}
	if params.Title != nil {
		book.Title = *params.Title
		columns = append(columns, "title")
	}
	if params.Author != nil {
		book.Author = *params.Author
		columns = append(columns, "author")
	}
	if params.Publisher != nil {
		book.Publisher = params.Publisher
		columns = append(columns, "publisher")
	}
	if params.CoverURL != nil {
		book.CoverURL = params.CoverURL
		columns = append(columns, "cover_url")
	}
	if params.IsRead != nil {
		book.IsRead = *params.IsRead
		columns = append(columns, "is_read")
	}
	if params.CurrentPage != nil {
		book.CurrentPage = *params.CurrentPage
		columns = append(columns, "current_page")
	}

	err = h.adminBooksService.Update(ctx, book, UpdateOptions{Columns: columns})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, book)
}

// delete handles DELETE /admin/books/:id.
func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	err = h.adminBooksService.Delete(ctx, id)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

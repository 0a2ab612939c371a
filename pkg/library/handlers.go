package library

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/libriverse/libriverse/pkg/errcodes"
)

type handler struct {
	libraryService *Service
}

// create handles POST /books.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	entry, err := h.libraryService.AddBook(ctx, userID, AddBookOptions{
		ISBN:           params.ISBN,
		Title:          params.Title,
		Author:         params.Author,
		Publisher:      params.Publisher,
		CoverURL:       params.CoverURL,
		PageCount:      params.PageCount,
		Language:       params.Language,
		CustomCoverURL: params.CustomCoverURL,
		IsRead:         params.IsRead,
		CurrentPage:    params.CurrentPage,
		PurchaseDate:   params.PurchaseDate,
		PurchasePrice:  params.PurchasePrice,
		LoanedTo:       params.LoanedTo,
		LoanDate:       params.LoanDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, NewEntryResponse(entry))
}

// list handles GET /books.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	entries, total, err := h.libraryService.List(ctx, userID, params.Limit, params.Offset)
	if err != nil {
		return err
	}

	books := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		books = append(books, NewEntryResponse(&entries[i]))
	}

	return c.JSON(http.StatusOK, ListBooksResponse{
		Books: books,
		Total: total,
	})
}

// retrieve handles GET /books/:id.
func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	entry, err := h.libraryService.Retrieve(ctx, userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewEntryResponse(entry))
}

// update handles PUT /books/:id.
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	entry, err := h.libraryService.Retrieve(ctx, userID, c.Param("id"))
	if err != nil {
		return err
	}

	columns := []string{}
	if params.CustomCoverURL != nil {
		entry.CustomCoverURL = params.CustomCoverURL
		columns = append(columns, "custom_cover_url")
	}
	if params.IsRead != nil {
		entry.IsRead = *params.IsRead
		columns = append(columns, "is_read")
	}
	if params.CurrentPage != nil {
		entry.CurrentPage = *params.CurrentPage
		columns = append(columns, "current_page")
	}
	if params.PurchaseDate != nil {
		entry.PurchaseDate = params.PurchaseDate
		columns = append(columns, "purchase_date")
	}
	if params.PurchasePrice != nil {
		entry.PurchasePrice = params.PurchasePrice
		columns = append(columns, "purchase_price")
	}
	if params.LoanedTo != nil {
		entry.LoanedTo = params.LoanedTo
		columns = append(columns, "loaned_to")
	}
	if params.LoanDate != nil {
		entry.LoanDate = params.LoanDate
		columns = append(columns, "loan_date")
	}

	err = h.libraryService.Update(ctx, entry, UpdateEntryOptions{Columns: columns})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewEntryResponse(entry))
}

// delete handles DELETE /books/:id.
func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	err := h.libraryService.Delete(ctx, userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

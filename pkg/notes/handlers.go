package notes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/models"
)

type handler struct {
	notesService *Service
}

// create handles POST /notes.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := CreateNotePayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	note, err := h.notesService.Create(ctx, userID, CreateNoteOptions{
		UserBookID: params.UserBookID,
		Chapter:    params.Chapter,
		Page:       params.Page,
		Content:    params.Content,
		IsGeneral:  params.IsGeneral,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, note)
}

// list handles GET /notes.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := ListNotesQuery{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	notes, err := h.notesService.List(ctx, userID, params.UserBookID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]models.Note{"notes": notes})
}

// update handles PUT /notes/:id.
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := UpdateNotePayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	note, err := h.notesService.Retrieve(ctx, userID, c.Param("id"))
	if err != nil {
		return err
	}

	columns := []string{}
	if params.Chapter != nil {
		note.Chapter = params.Chapter
		columns = append(columns, "chapter")
	}
	if params.Page != nil {
		note.Page = params.Page
		columns = append(columns, "page")
	}
	if params.Content != nil {
		note.Content = *params.Content
		columns = append(columns, "content")
	}

	err = h.notesService.Update(ctx, note, UpdateNoteOptions{Columns: columns})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

// delete handles DELETE /notes/:id.
func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	err := h.notesService.Delete(ctx, userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

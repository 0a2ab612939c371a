package readinglogs

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/libriverse/libriverse/pkg/errcodes"
)

type handler struct {
	readingLogService *Service
}

// create handles POST /reading-logs.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := CreateReadingLogPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	log, err := h.readingLogService.Log(ctx, userID, params.UserBookID, params.CurrentPage)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, log)
}

// list handles GET /reading-logs.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := ListReadingLogsQuery{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	logs, err := h.readingLogService.List(ctx, userID, params.UserBookID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListReadingLogsResponse{ReadingLogs: logs})
}

package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/libriverse/libriverse/pkg/errcodes"
)

type handler struct {
	settingsService *Service
}

// get handles GET /user/preferences.
func (h *handler) get(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	prefs, err := h.settingsService.Get(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, prefs)
}

// update handles PUT /user/preferences.
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := UpdatePreferencesPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	prefs, err := h.settingsService.Update(ctx, userID, UpdateOptions{
		Theme:    params.Theme,
		ViewMode: params.ViewMode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, prefs)
}

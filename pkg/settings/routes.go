package settings

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers preference routes on an authenticated group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	settingsService := NewService(db)

	h := &handler{
		settingsService: settingsService,
	}

	g.GET("/user/preferences", h.get)
	g.PUT("/user/preferences", h.update)
}

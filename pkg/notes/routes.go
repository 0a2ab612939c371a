package notes

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers note routes on an authenticated group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	notesService := NewService(db)

	h := &handler{
		notesService: notesService,
	}

	g.GET("/notes", h.list)
	g.POST("/notes", h.create)
	g.PUT("/notes/:id", h.update)
	g.DELETE("/notes/:id", h.delete)
}

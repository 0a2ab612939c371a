package library

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers library routes on an authenticated group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	libraryService := NewService(db)

	h := &handler{
		libraryService: libraryService,
	}

	g.GET("/books", h.list)
	g.POST("/books", h.create)
	g.GET("/books/:id", h.retrieve)
	g.PUT("/books/:id", h.update)
	g.DELETE("/books/:id", h.delete)
}

package adminbooks

import (
	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the legacy catalog routes on an authenticated
// group. Every route additionally requires the admin flag.
func RegisterRoutes(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	adminBooksService := NewService(db)

	h := &handler{
		adminBooksService: adminBooksService,
	}

	admin := g.Group("/admin", authMiddleware.RequireAdmin)
	admin.GET("/books", h.list)
	admin.PUT("/books/:id", h.update)
	admin.DELETE("/books/:id", h.delete)
}

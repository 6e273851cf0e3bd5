package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Prem324/bookshelf/internal/api/http/handler"
	"github.com/Prem324/bookshelf/internal/api/http/middleware"
)

// RegisterBook mounts the book service routes. Everything under /books
// sits behind the token validation middleware; /health does not.
func RegisterBook(e *echo.Echo, books *handler.BookHandler, health *handler.HealthHandler, validator middleware.TokenValidator) {
	group := e.Group("/books", middleware.Authenticate(validator))
	group.POST("/", books.Create)
	group.GET("/", books.List)
	group.PUT("/:id", books.Update)
	group.POST("/:id/image", books.UploadImage)
	group.DELETE("/:id", books.Delete)

	e.GET("/health", health.Health)
}

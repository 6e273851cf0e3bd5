// Package router binds handlers to routes for both services.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Prem324/bookshelf/internal/api/http/handler"
)

// RegisterAuth mounts the auth service routes.
func RegisterAuth(e *echo.Echo, auth *handler.AuthHandler, health *handler.HealthHandler) {
	users := e.Group("/users")
	users.POST("/register", auth.Register)
	users.POST("/login", auth.Login)
	users.POST("/refresh", auth.Refresh)
	users.GET("/validate", auth.Validate)
	users.POST("/forgot-password", auth.ForgotPassword)
	users.POST("/reset-password", auth.ResetPassword)

	e.GET("/health", health.Health)
}

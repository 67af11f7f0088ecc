package router

import (
	"github.com/deppfellow/students-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not student operations.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.CheckHealth)
	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}

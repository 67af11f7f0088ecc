// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/students-api/internal/handler"
	"github.com/deppfellow/students-api/internal/middleware"
	"github.com/deppfellow/students-api/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the echo instance with the global middleware chain,
// the error handler, system routes and the student routes.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// "/api/students/" routes like "/api/students".
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	// Order matters: the request id feeds the context logger, the New
	// Relic transaction must exist before EnhanceTracing and the context
	// logger reads its trace ids, and Recover sits innermost so its 500
	// still passes through the request logger.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerStudentRoutes(router.Group("/api/students"), h)

	return router
}

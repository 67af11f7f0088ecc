package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/students-api/internal/middleware"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/deppfellow/students-api/internal/server"
	"github.com/labstack/echo/v4"
)

// Banner is the body of GET /.
const Banner = "Students API is running"

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	healthPingTimeout = 5 * time.Second
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Root answers GET / with a plain text banner.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, Banner)
}

// CheckHealth pings the store: 200 when it answers, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	db := h.checkDatabase(c.Request().Context())

	res := model.HealthResponse{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]model.HealthCheck{"database": db},
	}

	if db.Status != statusHealthy {
		res.Status = statusUnhealthy
		logger.Error().
			Str("driver", db.Driver).
			Str("response_time", db.ResponseTime).
			Str("error", db.Error).
			Msg("database health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":    "database",
				"driver":        db.Driver,
				"response_time": db.ResponseTime,
				"error_message": db.Error,
			})
		}

		return c.JSON(http.StatusServiceUnavailable, res)
	}

	logger.Debug().Str("response_time", db.ResponseTime).Msg("health check passed")
	return c.JSON(http.StatusOK, res)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) model.HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	start := time.Now()
	err := h.server.DB.Ping(ctx)

	check := model.HealthCheck{
		Status:       statusHealthy,
		Driver:       h.server.DB.Driver,
		ResponseTime: time.Since(start).String(),
	}
	if err != nil {
		check.Status = statusUnhealthy
		check.Error = err.Error()
	}
	return check
}

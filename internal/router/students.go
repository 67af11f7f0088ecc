package router

import (
	"net/http"

	"github.com/deppfellow/students-api/internal/errs"
	"github.com/deppfellow/students-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerStudentRoutes mounts the student resource. Static segments
// (count, by-email) win over :id in echo's router regardless of order.
func registerStudentRoutes(g *echo.Group, h *handler.Handlers) {
	g.GET("", handler.Handle(h.Student.ListStudents, http.StatusOK))
	g.GET("/count", handler.Handle(h.Student.CountStudents, http.StatusOK))
	g.GET("/by-email/:email", handler.Handle(h.Student.GetStudentByEmail, http.StatusOK))
	// An empty email lands here and fails validation with 400.
	g.GET("/by-email", handler.Handle(h.Student.GetStudentByEmail, http.StatusOK))
	g.GET("/:id", handler.Handle(h.Student.GetStudentByID, http.StatusOK))
	g.DELETE("/:id", handler.Handle(h.Student.DeleteStudent, http.StatusOK))
	g.PUT("/:id", handler.Handle(h.Student.ReplaceStudent, http.StatusOK, handler.WithErrorKey(errs.BodyKeyMessage)))
	g.POST("", handler.Handle(h.Student.CreateStudent, http.StatusCreated))
}

package handler

import (
	"github.com/deppfellow/students-api/internal/server"
	"github.com/deppfellow/students-api/internal/service"
)

// Handlers groups every HTTP handler so router setup takes one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Student *StudentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Student: NewStudentHandler(s, services.Student),
	}
}

package service

import (
	"github.com/deppfellow/students-api/internal/repository"
	"github.com/deppfellow/students-api/internal/server"
)

type Services struct {
	Student *StudentService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Student: NewStudentService(s, repos.Student),
	}, nil
}

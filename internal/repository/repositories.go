package repository

import (
	"fmt"

	"github.com/deppfellow/students-api/internal/config"
	"github.com/deppfellow/students-api/internal/database"
	"github.com/deppfellow/students-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Student StudentRepository
}

// NewRepositories constructs the repository container, picking the
// Student implementation that matches the connected database driver.
func NewRepositories(s *server.Server) (*Repositories, error) {
	var students StudentRepository

	switch s.DB.Driver {
	case config.DriverMongo:
		students = NewMongoStudentRepository(s.DB.MongoDB.Collection(database.StudentsCollection))
	case config.DriverPostgres:
		students = NewPostgresStudentRepository(s.DB.Pool)
	case config.DriverMemory:
		students = NewMemoryStudentRepository()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", s.DB.Driver)
	}

	return &Repositories{
		Student: students,
	}, nil
}

package model

import "time"

// StudentsResponse is the body of GET /api/students.
type StudentsResponse struct {
	Students []Student `json:"students"`
}

// CountResponse is the body of GET /api/students/count.
type CountResponse struct {
	Count int64 `json:"count"`
}

// StudentResponse wraps a single record.
type StudentResponse struct {
	Student *Student `json:"student"`
}

// DeletedStudentResponse echoes the removed record back.
type DeletedStudentResponse struct {
	Message string   `json:"message"`
	Student *Student `json:"student"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// HealthCheck reports one dependency. Error is set only when unhealthy.
type HealthCheck struct {
	Status       string `json:"status"`
	Driver       string `json:"driver,omitempty"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

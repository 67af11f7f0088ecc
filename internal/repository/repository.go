// Package repository handles all interactions with the database.
//
// It defines the StudentRepository contract and provides one
// implementation per supported store (MongoDB, PostgreSQL, in-memory).
// Every failure is returned as a *dberr.Error so the service layer can
// classify it without knowing which driver produced it.
package repository

import (
	"context"

	"github.com/deppfellow/students-api/internal/model"
)

// Operation names used in dberr.Error.Op and in logs.
const (
	OpList        = "list_students"
	OpCount       = "count_students"
	OpFindByEmail = "find_student_by_email"
	OpFindByID    = "find_student_by_id"
	OpDeleteByID  = "delete_student_by_id"
	OpReplaceByID = "replace_student_by_id"
	OpCreate      = "create_student"
)

// StudentRepository is the persistence collaborator for Student records.
//
// Each method is a single store operation. Mutations are atomic on one
// document; no ordering is guaranteed across calls.
type StudentRepository interface {
	// List returns every record. The slice is never nil.
	List(ctx context.Context) ([]model.Student, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int64, error)

	// FindByEmail returns the first record with the given email.
	FindByEmail(ctx context.Context, email string) (*model.Student, error)

	// FindByID returns the record with the given identifier.
	FindByID(ctx context.Context, id string) (*model.Student, error)

	// DeleteByID removes the record and returns it as it was.
	DeleteByID(ctx context.Context, id string) (*model.Student, error)

	// ReplaceByID overwrites name, email and cohort and returns the
	// updated record. Checks run in order: identifier format, field
	// validation, existence.
	ReplaceByID(ctx context.Context, id string, fields model.StudentFields) (*model.Student, error)

	// Create inserts a new record and returns it with its identifier.
	Create(ctx context.Context, fields model.StudentFields) (*model.Student, error)
}

package repository

import (
	"context"
	"sync"

	"github.com/deppfellow/students-api/internal/dberr"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/google/uuid"
)

// MemoryStudentRepository keeps records in a map keyed by UUID.
//
// It backs the "memory" driver for local runs and the HTTP tests.
type MemoryStudentRepository struct {
	mu       sync.RWMutex
	students map[string]model.Student
	// order keeps insertion order so List is stable.
	order []string
}

func NewMemoryStudentRepository() *MemoryStudentRepository {
	return &MemoryStudentRepository{
		students: make(map[string]model.Student),
	}
}

func (r *MemoryStudentRepository) List(ctx context.Context) ([]model.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, dberr.New(dberr.Store, OpList, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]model.Student, 0, len(r.order))
	for _, id := range r.order {
		students = append(students, r.students[id])
	}
	return students, nil
}

func (r *MemoryStudentRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, dberr.New(dberr.Store, OpCount, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.students)), nil
}

func (r *MemoryStudentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, dberr.New(dberr.Store, OpFindByEmail, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if s := r.students[id]; s.Email == email {
			return &s, nil
		}
	}
	return nil, dberr.NewNotFound(OpFindByEmail)
}

func (r *MemoryStudentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	key, err := r.key(ctx, OpFindByID, id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[key]
	if !ok {
		return nil, dberr.NewNotFound(OpFindByID)
	}
	return &s, nil
}

func (r *MemoryStudentRepository) DeleteByID(ctx context.Context, id string) (*model.Student, error) {
	key, err := r.key(ctx, OpDeleteByID, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.students[key]
	if !ok {
		return nil, dberr.NewNotFound(OpDeleteByID)
	}

	delete(r.students, key)
	r.order = removeID(r.order, key)

	return &s, nil
}

func (r *MemoryStudentRepository) ReplaceByID(ctx context.Context, id string, fields model.StudentFields) (*model.Student, error) {
	key, err := r.key(ctx, OpReplaceByID, id)
	if err != nil {
		return nil, err
	}

	if missing := fields.MissingFields(); len(missing) > 0 {
		return nil, dberr.NewValidation(OpReplaceByID, missing...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[key]; !ok {
		return nil, dberr.NewNotFound(OpReplaceByID)
	}

	s := model.Student{ID: key, Name: fields.Name, Email: fields.Email, Cohort: fields.Cohort}
	r.students[key] = s
	return &s, nil
}

func (r *MemoryStudentRepository) Create(ctx context.Context, fields model.StudentFields) (*model.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, dberr.New(dberr.Store, OpCreate, err)
	}

	if missing := fields.MissingFields(); len(missing) > 0 {
		return nil, dberr.NewValidation(OpCreate, missing...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := model.Student{ID: uuid.NewString(), Name: fields.Name, Email: fields.Email, Cohort: fields.Cohort}
	r.students[s.ID] = s
	r.order = append(r.order, s.ID)
	return &s, nil
}

// key checks the context and parses id into its canonical UUID form.
func (r *MemoryStudentRepository) key(ctx context.Context, op, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", dberr.New(dberr.Store, op, err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", dberr.NewMalformedID(op, id, err)
	}
	return parsed.String(), nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

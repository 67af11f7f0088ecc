package service

import (
	"context"
	"errors"

	"github.com/deppfellow/students-api/internal/dberr"
	"github.com/deppfellow/students-api/internal/errs"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/deppfellow/students-api/internal/repository"
	"github.com/deppfellow/students-api/internal/server"
	"github.com/rs/zerolog"
)

// Client-facing messages.
const (
	msgStudentNotFound = "Student not found"
	msgStudentDeleted  = "Student deleted"

	msgListFailed        = "Server error fetching students"
	msgCountFailed       = "Server error getting student count"
	msgFindByEmailFailed = "Server error getting student by email"
	msgFindByIDFailed    = "Server error getting student"
	msgDeleteFailed      = "Server error deleting student"
	msgCreateFailed      = "Server error creating student"

	msgReplaceInvalidID  = "Invalid student ID"
	msgReplaceValidation = "Improper data entry."
	msgReplaceFailed     = "There was a problem with the server."
)

// StudentService runs one repository call per operation and turns the
// outcome into either a value or an *errs.HTTPError.
type StudentService struct {
	server *server.Server
	repo   repository.StudentRepository
}

func NewStudentService(s *server.Server, repo repository.StudentRepository) *StudentService {
	return &StudentService{
		server: s,
		repo:   repo,
	}
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storeFailure(ctx, repository.OpList, err, errs.NewInternalServerError(msgListFailed))
	}
	return students, nil
}

func (s *StudentService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.storeFailure(ctx, repository.OpCount, err, errs.NewInternalServerError(msgCountFailed))
	}
	return count, nil
}

func (s *StudentService) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	student, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if dberr.Is(err, dberr.NotFound) {
			return nil, errs.NewNotFoundError(msgStudentNotFound, false, nil)
		}
		return nil, s.storeFailure(ctx, repository.OpFindByEmail, err, errs.NewInternalServerError(msgFindByEmailFailed))
	}
	return student, nil
}

// FindByID treats an unparseable id like a missing record.
func (s *StudentService) FindByID(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch dberr.KindOf(err) {
		case dberr.NotFound, dberr.MalformedID:
			return nil, errs.NewNotFoundError(msgStudentNotFound, false, nil)
		default:
			return nil, s.storeFailure(ctx, repository.OpFindByID, err, errs.NewInternalServerError(msgFindByIDFailed))
		}
	}
	return student, nil
}

// DeleteByID returns the removed record. An unparseable id is a 404.
func (s *StudentService) DeleteByID(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		switch dberr.KindOf(err) {
		case dberr.NotFound, dberr.MalformedID:
			return nil, errs.NewNotFoundError(msgStudentNotFound, false, nil)
		default:
			return nil, s.storeFailure(ctx, repository.OpDeleteByID, err, errs.NewInternalServerError(msgDeleteFailed))
		}
	}

	zerolog.Ctx(ctx).Info().Str("student_id", student.ID).Msg(msgStudentDeleted)

	return student, nil
}

// ReplaceByID is the only operation that tells the three failure kinds
// apart. Every error it returns renders its text under "message".
func (s *StudentService) ReplaceByID(ctx context.Context, id string, fields model.StudentFields) (*model.Student, error) {
	student, err := s.repo.ReplaceByID(ctx, id, fields)
	if err == nil {
		return student, nil
	}

	logger := zerolog.Ctx(ctx).With().
		Str("operation", repository.OpReplaceByID).
		Str("student_id", id).
		Logger()

	var httpErr *errs.HTTPError
	switch dberr.KindOf(err) {
	case dberr.MalformedID:
		logger.Warn().Err(err).Msg("error updating student")
		httpErr = errs.NewBadRequestError(msgReplaceInvalidID, false, nil, nil)
	case dberr.Validation:
		logger.Warn().Err(err).Msg("validation error")
		httpErr = errs.NewUnprocessableEntityError(msgReplaceValidation, fieldErrors(err))
	case dberr.NotFound:
		httpErr = errs.NewNotFoundError(msgStudentNotFound, false, nil)
	default:
		httpErr = s.storeFailure(ctx, repository.OpReplaceByID, err, errs.NewInternalServerError(msgReplaceFailed))
	}

	return nil, httpErr.WithKey(errs.BodyKeyMessage)
}

// Create inserts a record. Presence is checked by the handler; a store
// that still rejects the values answers 400 like a missing field.
func (s *StudentService) Create(ctx context.Context, fields model.StudentFields) (*model.Student, error) {
	student, err := s.repo.Create(ctx, fields)
	if err != nil {
		if dberr.Is(err, dberr.Validation) {
			return nil, errs.NewBadRequestError("name, email, and cohort are required", false, nil, fieldErrors(err))
		}
		return nil, s.storeFailure(ctx, repository.OpCreate, err, errs.NewInternalServerError(msgCreateFailed))
	}

	zerolog.Ctx(ctx).Info().Str("student_id", student.ID).Msg("student created")

	return student, nil
}

// storeFailure logs the real cause and returns the sanitized error.
func (s *StudentService) storeFailure(ctx context.Context, op string, cause error, httpErr *errs.HTTPError) *errs.HTTPError {
	zerolog.Ctx(ctx).Error().
		Err(cause).
		Str("operation", op).
		Msg(httpErr.Message)

	if s.server == nil {
		return httpErr
	}

	if app := s.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("StudentStoreError", map[string]any{
			"operation":     op,
			"kind":          dberr.KindOf(cause).String(),
			"error_message": cause.Error(),
		})
	}

	return httpErr
}

func fieldErrors(err error) []errs.FieldError {
	var dbErr *dberr.Error
	if !errors.As(err, &dbErr) || len(dbErr.Fields) == 0 {
		return nil
	}

	out := make([]errs.FieldError, 0, len(dbErr.Fields))
	for _, f := range dbErr.Fields {
		out = append(out, errs.FieldError{Field: f, Error: "is required"})
	}
	return out
}

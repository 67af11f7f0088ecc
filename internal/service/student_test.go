package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/students-api/internal/dberr"
	"github.com/deppfellow/students-api/internal/errs"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/deppfellow/students-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepo answers every call with err.
type failingRepo struct {
	err error
}

func (r failingRepo) List(context.Context) ([]model.Student, error) { return nil, r.err }
func (r failingRepo) Count(context.Context) (int64, error)          { return 0, r.err }
func (r failingRepo) FindByEmail(context.Context, string) (*model.Student, error) {
	return nil, r.err
}
func (r failingRepo) FindByID(context.Context, string) (*model.Student, error) {
	return nil, r.err
}
func (r failingRepo) DeleteByID(context.Context, string) (*model.Student, error) {
	return nil, r.err
}
func (r failingRepo) ReplaceByID(context.Context, string, model.StudentFields) (*model.Student, error) {
	return nil, r.err
}
func (r failingRepo) Create(context.Context, model.StudentFields) (*model.Student, error) {
	return nil, r.err
}

var _ repository.StudentRepository = failingRepo{}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

var (
	storeErr     = dberr.New(dberr.Store, "op", errors.New("connection reset"))
	notFoundErr  = dberr.NewNotFound("op")
	malformedErr = dberr.NewMalformedID("op", "xyz", errors.New("bad hex"))
	invalidErr   = dberr.NewValidation("op", "name")
)

func TestStudentService_StoreFailuresAre500(t *testing.T) {
	svc := NewStudentService(nil, failingRepo{err: storeErr})
	ctx := context.Background()

	cases := map[string]func() error{
		msgListFailed:        func() error { _, err := svc.List(ctx); return err },
		msgCountFailed:       func() error { _, err := svc.Count(ctx); return err },
		msgFindByEmailFailed: func() error { _, err := svc.FindByEmail(ctx, "a@x.io"); return err },
		msgFindByIDFailed:    func() error { _, err := svc.FindByID(ctx, "id"); return err },
		msgDeleteFailed:      func() error { _, err := svc.DeleteByID(ctx, "id"); return err },
		msgCreateFailed:      func() error { _, err := svc.Create(ctx, model.StudentFields{}); return err },
	}

	for message, call := range cases {
		t.Run(message, func(t *testing.T) {
			httpErr := requireHTTPError(t, call())
			assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
			assert.Equal(t, message, httpErr.Message)
			assert.Equal(t, errs.BodyKey(""), httpErr.Key)
		})
	}
}

func TestStudentService_FindAndDeleteTreatMalformedAsNotFound(t *testing.T) {
	for _, cause := range []error{notFoundErr, malformedErr} {
		svc := NewStudentService(nil, failingRepo{err: cause})

		_, err := svc.FindByID(context.Background(), "xyz")
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, msgStudentNotFound, httpErr.Message)

		_, err = svc.DeleteByID(context.Background(), "xyz")
		httpErr = requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	}
}

func TestStudentService_FindByEmailNotFound(t *testing.T) {
	svc := NewStudentService(nil, failingRepo{err: notFoundErr})

	_, err := svc.FindByEmail(context.Background(), "nobody@x.io")
	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestStudentService_ReplaceClassification(t *testing.T) {
	tests := []struct {
		name    string
		cause   error
		status  int
		message string
	}{
		{name: "malformed id", cause: malformedErr, status: http.StatusBadRequest, message: msgReplaceInvalidID},
		{name: "validation", cause: invalidErr, status: http.StatusUnprocessableEntity, message: msgReplaceValidation},
		{name: "not found", cause: notFoundErr, status: http.StatusNotFound, message: msgStudentNotFound},
		{name: "store", cause: storeErr, status: http.StatusInternalServerError, message: msgReplaceFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewStudentService(nil, failingRepo{err: tt.cause})

			_, err := svc.ReplaceByID(context.Background(), "id", model.StudentFields{})
			httpErr := requireHTTPError(t, err)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
			assert.Equal(t, errs.BodyKeyMessage, httpErr.Key)
		})
	}
}

func TestStudentService_ReplaceValidationListsFields(t *testing.T) {
	svc := NewStudentService(nil, failingRepo{err: dberr.NewValidation("op", "name", "cohort")})

	_, err := svc.ReplaceByID(context.Background(), "id", model.StudentFields{})
	httpErr := requireHTTPError(t, err)
	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "cohort", Error: "is required"},
	}, httpErr.Errors)
}

func TestStudentService_CreateValidationIs400(t *testing.T) {
	svc := NewStudentService(nil, failingRepo{err: invalidErr})

	_, err := svc.Create(context.Background(), model.StudentFields{})
	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

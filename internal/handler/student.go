package handler

import (
	"net/url"

	"github.com/deppfellow/students-api/internal/errs"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/deppfellow/students-api/internal/server"
	"github.com/deppfellow/students-api/internal/service"
	"github.com/labstack/echo/v4"
)

const msgInvalidEmail = "Invalid email"

// StudentHandler serves the /api/students routes.
type StudentHandler struct {
	Handler
	students *service.StudentService
}

func NewStudentHandler(s *server.Server, students *service.StudentService) *StudentHandler {
	return &StudentHandler{
		Handler:  NewHandler(s),
		students: students,
	}
}

func (h *StudentHandler) ListStudents(c echo.Context, _ *model.ListStudentsRequest) (*model.StudentsResponse, error) {
	students, err := h.students.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.StudentsResponse{Students: students}, nil
}

func (h *StudentHandler) CountStudents(c echo.Context, _ *model.CountStudentsRequest) (*model.CountResponse, error) {
	count, err := h.students.Count(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.CountResponse{Count: count}, nil
}

// GetStudentByEmail looks up the decoded :email segment. echo hands path
// params over raw when the URL carries escapes, so "ada%40x.io" is
// decoded here.
func (h *StudentHandler) GetStudentByEmail(c echo.Context, req *model.GetStudentByEmailRequest) (*model.StudentResponse, error) {
	email, err := url.PathUnescape(req.Email)
	if err != nil {
		return nil, errs.NewBadRequestError(msgInvalidEmail, false, nil, nil)
	}

	student, err := h.students.FindByEmail(c.Request().Context(), email)
	if err != nil {
		return nil, err
	}
	return &model.StudentResponse{Student: student}, nil
}

func (h *StudentHandler) GetStudentByID(c echo.Context, req *model.GetStudentByIDRequest) (*model.StudentResponse, error) {
	student, err := h.students.FindByID(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.StudentResponse{Student: student}, nil
}

func (h *StudentHandler) DeleteStudent(c echo.Context, req *model.DeleteStudentRequest) (*model.DeletedStudentResponse, error) {
	student, err := h.students.DeleteByID(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.DeletedStudentResponse{Message: "Student deleted", Student: student}, nil
}

func (h *StudentHandler) ReplaceStudent(c echo.Context, req *model.ReplaceStudentRequest) (*model.StudentResponse, error) {
	student, err := h.students.ReplaceByID(c.Request().Context(), req.ID, req.Fields())
	if err != nil {
		return nil, err
	}
	return &model.StudentResponse{Student: student}, nil
}

func (h *StudentHandler) CreateStudent(c echo.Context, req *model.CreateStudentRequest) (*model.StudentResponse, error) {
	student, err := h.students.Create(c.Request().Context(), req.Fields())
	if err != nil {
		return nil, err
	}
	return &model.StudentResponse{Student: student}, nil
}

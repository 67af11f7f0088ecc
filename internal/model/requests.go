package model

// ListStudentsRequest carries no input.
type ListStudentsRequest struct{}

func (r *ListStudentsRequest) Validate() error { return nil }

// CountStudentsRequest carries no input.
type CountStudentsRequest struct{}

func (r *CountStudentsRequest) Validate() error { return nil }

// GetStudentByEmailRequest binds the :email path parameter.
type GetStudentByEmailRequest struct {
	Email string `param:"email" json:"-" validate:"required"`
}

func (r *GetStudentByEmailRequest) Validate() error {
	return validate.Struct(r)
}

func (r *GetStudentByEmailRequest) ValidationMessage() string {
	return "Email is required"
}

// GetStudentByIDRequest binds the :id path parameter.
type GetStudentByIDRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *GetStudentByIDRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteStudentRequest binds the :id path parameter.
type DeleteStudentRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *DeleteStudentRequest) Validate() error {
	return validate.Struct(r)
}

// ReplaceStudentRequest binds the :id path parameter and the JSON body.
//
// Field presence is NOT checked here: an incomplete replacement is
// rejected by the store as a validation failure (422), not as a bad
// request (400).
type ReplaceStudentRequest struct {
	ID     string `param:"id" json:"-" validate:"required"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Cohort string `json:"cohort"`
}

func (r *ReplaceStudentRequest) Validate() error {
	return validate.Struct(r)
}

// Fields returns the replacement values.
func (r *ReplaceStudentRequest) Fields() StudentFields {
	return StudentFields{Name: r.Name, Email: r.Email, Cohort: r.Cohort}
}

// CreateStudentRequest is the POST body; every field is required.
type CreateStudentRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Cohort string `json:"cohort" validate:"required"`
}

func (r *CreateStudentRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateStudentRequest) ValidationMessage() string {
	return "name, email, and cohort are required"
}

// Fields returns the values to insert.
func (r *CreateStudentRequest) Fields() StudentFields {
	return StudentFields{Name: r.Name, Email: r.Email, Cohort: r.Cohort}
}

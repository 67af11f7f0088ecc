package model

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Student is the persisted record.
//
// ID is assigned by the store on creation and never changes afterwards.
type Student struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Cohort string `json:"cohort"`
}

// StudentFields are the client-writable attributes of a Student.
type StudentFields struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Cohort string `json:"cohort" validate:"required"`
}

// Fields returns the writable attributes of s.
func (s Student) Fields() StudentFields {
	return StudentFields{Name: s.Name, Email: s.Email, Cohort: s.Cohort}
}

// Validate checks presence of every field.
func (f StudentFields) Validate() error {
	return validate.Struct(f)
}

// MissingFields lists the lowercased names of the fields that failed
// validation, in declaration order. It returns nil when f is valid.
func (f StudentFields) MissingFields() []string {
	err := f.Validate()
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fields
}

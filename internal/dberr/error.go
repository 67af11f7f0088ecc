package dberr

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the category of a persistence failure.
type Kind int

const (
	// Store is any failure that is not classified more precisely.
	Store Kind = iota
	// NotFound means no record matched the filter.
	NotFound
	// MalformedID means the identifier is not in the store's key format.
	MalformedID
	// Validation means the record's values were rejected (e.g. empty required field).
	Validation
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case MalformedID:
		return "malformed_id"
	case Validation:
		return "validation"
	default:
		return "store"
	}
}

// Error is a persistence error tagged with its Kind.
//
// Op names the repository operation ("find_by_id", "replace_by_id", ...).
// Fields lists the offending fields for Validation errors.
type Error struct {
	Kind   Kind
	Op     string
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())

	if len(e.Fields) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Fields, ", "))
		b.WriteString(")")
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err.
//
// Errors that are not (and do not wrap) *Error are Store failures.
func KindOf(err error) Kind {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Kind
	}
	return Store
}

// Is reports whether err is a persistence error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// New builds a tagged error.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewNotFound reports that no record matched.
func NewNotFound(op string) *Error {
	return &Error{Kind: NotFound, Op: op}
}

// NewMalformedID reports an identifier the store cannot parse.
func NewMalformedID(op, id string, err error) *Error {
	return &Error{Kind: MalformedID, Op: op, Err: fmt.Errorf("invalid id %q: %w", id, err)}
}

// NewValidation reports the fields whose values were rejected.
func NewValidation(op string, fields ...string) *Error {
	return &Error{
		Kind:   Validation,
		Op:     op,
		Fields: fields,
		Err:    errors.New(validationMessage(fields)),
	}
}

// validationMessage produces "Name and Cohort are required" style text.
func validationMessage(fields []string) string {
	if len(fields) == 0 {
		return "record failed validation"
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = humanizeText(f)
	}

	if len(names) == 1 {
		return names[0] + " is required"
	}

	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1] + " are required"
}

// humanizeText converts snake_case identifiers into Title Case.
//
// Example:
//
//	"first_name" -> "First Name"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

package errs

import (
	"encoding/json"
	"strings"
)

// FieldError points at one offending request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// BodyKey names the JSON key that carries the human-readable message.
//
// The student routes answer with `{"error": "..."}`, except the replace
// route which answers with `{"message": "..."}`.
type BodyKey string

const (
	BodyKeyError   BodyKey = "error"
	BodyKeyMessage BodyKey = "message"
)

// HTTPError is what services return and the global error handler renders.
// Override marks messages built from field errors; Key defaults to "error".
type HTTPError struct {
	Code     string
	Message  string
	Status   int
	Override bool
	Errors   []FieldError
	Key      BodyKey
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithKey returns a copy rendering its message under key.
func (e *HTTPError) WithKey(key BodyKey) *HTTPError {
	c := *e
	c.Key = key
	return &c
}

// MarshalJSON renders the error body. Message is written under Key, so a
// not-found error looks like:
//
//	{"code":"NOT_FOUND","error":"Student not found","status":404}
func (e HTTPError) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"code":   e.Code,
		"status": e.Status,
	}

	key := e.Key
	if key == "" {
		key = BodyKeyError
	}
	body[string(key)] = e.Message

	if e.Override {
		body["override"] = true
	}

	if len(e.Errors) > 0 {
		body["errors"] = e.Errors
	}

	return json.Marshal(body)
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

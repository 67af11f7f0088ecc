package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/students-api/internal/config"
	"github.com/deppfellow/students-api/internal/dberr"
	"github.com/deppfellow/students-api/internal/errs"
	"github.com/deppfellow/students-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestServer() *server.Server {
	logger := zerolog.New(io.Discard)
	return &server.Server{Config: config.DefaultConfig(), Logger: &logger}
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})

	assert.NoError(t, h(c))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestContextEnhancer_StoresLogger(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.NotNil(t, GetLogger(c))

	h := NewContextEnhancer(newTestServer()).EnhanceContext()(func(c echo.Context) error {
		assert.NotNil(t, c.Get(LoggerKey))
		assert.NotEqual(t, zerolog.Disabled, zerolog.Ctx(c.Request().Context()).GetLevel())
		return nil
	})
	assert.NoError(t, h(c))
}

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "http error passes through", err: errs.NewNotFoundError("Student not found", false, nil), status: 404, msg: "Student not found"},
		{name: "route not found", err: echo.ErrNotFound, status: 404, msg: "Route not found"},
		{name: "method not allowed", err: echo.ErrMethodNotAllowed, status: 405, msg: "Method Not Allowed"},
		{name: "stray not found", err: dberr.NewNotFound("op"), status: 404, msg: "Resource not found"},
		{name: "unknown", err: errors.New("boom"), status: 500, msg: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := toHTTPError(tt.err)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.msg, httpErr.Message)
		})
	}
}

func TestGlobalErrorHandler_UsesBodyKey(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPut, "/", nil), rec)

	err := errs.NewBadRequestError("Invalid student ID", false, nil, nil).WithKey(errs.BodyKeyMessage)
	NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(err, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"code":"BAD_REQUEST","message":"Invalid student ID","status":400}`, rec.Body.String())
}

func TestTracing_PassThroughWithoutNewRelic(t *testing.T) {
	tm := NewTracingMiddleware(newTestServer(), nil)

	calls := 0
	next := func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusNoContent)
	}

	e := echo.New()
	for _, mw := range []echo.MiddlewareFunc{tm.NewRelicMiddleware(), tm.EnhanceTracing()} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		assert.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Equal(t, 2, calls)
}

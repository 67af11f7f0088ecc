package handler

import (
	"errors"
	"time"

	"github.com/deppfellow/students-api/internal/errs"
	"github.com/deppfellow/students-api/internal/middleware"
	"github.com/deppfellow/students-api/internal/server"
	"github.com/deppfellow/students-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler carries the application container into every handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Payload is a pointer to a request struct that validates itself.
type Payload[Req any] interface {
	*Req
	validation.Validatable
}

// route describes how a typed endpoint answers: the success status and,
// optionally, the body key forced onto its errors.
type route struct {
	status   int
	errorKey errs.BodyKey
}

type Option func(*route)

// WithErrorKey renders every error of the route under key, unless the
// error already chose one.
func WithErrorKey(key errs.BodyKey) Option {
	return func(r *route) {
		r.errorKey = key
	}
}

func (r route) decorate(err error) error {
	if r.errorKey == "" {
		return err
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) && httpErr.Key == "" {
		return httpErr.WithKey(r.errorKey)
	}
	return err
}

// phase records one pipeline step on the transaction ("validation" or
// "handler") and notices err.
func phase(txn *newrelic.Transaction, name string, d time.Duration, err error) {
	if txn == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failed"
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	txn.AddAttribute(name+".status", status)
	txn.AddAttribute(name+".duration_ms", d.Milliseconds())
}

// serve runs bind+validate, then call, then writes the JSON result.
// Errors are returned for the global error handler to render.
func (r route) serve(c echo.Context, req validation.Validatable, call func() (any, error)) error {
	start := time.Now()
	path := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", path)
	}

	logger := middleware.GetLogger(c).With().
		Str("route", path).
		Logger()

	err := validation.BindAndValidate(c, req)
	validated := time.Since(start)
	phase(txn, "validation", validated, err)
	if err != nil {
		logger.Warn().Err(err).Dur("validation_duration", validated).Msg("request validation failed")
		return r.decorate(err)
	}

	callStart := time.Now()
	result, err := call()
	called := time.Since(callStart)
	phase(txn, "handler", called, err)
	if txn != nil {
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}
	if err != nil {
		logger.Warn().Err(err).Dur("handler_duration", called).Msg("handler execution failed")
		return r.decorate(err)
	}

	if e := logger.Debug(); e.Enabled() {
		e.Dur("validation_duration", validated).
			Dur("handler_duration", called).
			Dur("total_duration", time.Since(start)).
			Msg("request completed")
	}

	return c.JSON(r.status, result)
}

// Handle adapts a typed endpoint into an echo.HandlerFunc. A fresh Req is
// allocated, bound and validated per request before the endpoint runs.
//
//	g.POST("", handler.Handle(h.Student.CreateStudent, http.StatusCreated))
func Handle[Req any, PReq Payload[Req], Res any](
	endpoint func(c echo.Context, req PReq) (Res, error),
	status int,
	opts ...Option,
) echo.HandlerFunc {
	r := route{status: status}
	for _, opt := range opts {
		opt(&r)
	}

	return func(c echo.Context) error {
		req := PReq(new(Req))
		return r.serve(c, req, func() (any, error) {
			return endpoint(c, req)
		})
	}
}

// Package middleware holds the echo middleware installed on every route
// and the global error handler that renders *errs.HTTPError values.
package middleware

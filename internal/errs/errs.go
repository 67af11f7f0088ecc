// Package errs holds the error shape returned to API clients: a status,
// a machine code, a message under a configurable JSON key, and optional
// per-field errors.
package errs

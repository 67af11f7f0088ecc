// Package dberr specifically handles database driver errors.
//
// It translates MongoDB and PostgreSQL driver errors into a small set of
// tagged kinds (not found, malformed identifier, validation, store failure)
// so callers switch on a Kind instead of inspecting driver types or
// error strings.
package dberr

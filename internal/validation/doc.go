// Package validation binds request data and turns validator failures into
// field-level 400 responses the client can act on.
package validation

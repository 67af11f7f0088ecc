// Package handler adapts echo requests to the student service: every
// typed endpoint goes through Handle, which binds, validates, calls and
// renders.
package handler

// Package service contains the student operations.
//
// It sits between the handler and repository layers: it receives
// validated input from a handler, makes exactly one repository call,
// and classifies the repository error into an *errs.HTTPError.
package service

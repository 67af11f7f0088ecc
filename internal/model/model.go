// Package model holds the Student entity and the request/response
// payloads exchanged on the /api/students routes.
package model

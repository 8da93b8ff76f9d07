package services

import "errors"

// Business-rule failures surfaced to handlers, which map them to HTTP
// statuses. Every failure is terminal for the request; nothing retries.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrRoleNotAllowed      = errors.New("role not allowed to perform this action")
	ErrForbidden           = errors.New("not allowed to access this resource")
	ErrDuplicateEnrollment = errors.New("already enrolled in this course")
	ErrDuplicateResource   = errors.New("resource already exists")
	ErrInvalidState        = errors.New("resource is in the wrong state for this action")
	ErrInvalidInput        = errors.New("invalid input")
)

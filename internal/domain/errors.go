package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidStatus      = errors.New("invalid invoice status; allowed: draft, pending, paid, overdue")
	ErrUploadFailed       = errors.New("file upload to storage failed")
	ErrEmailSendFailed    = errors.New("sending invoice email failed")
)

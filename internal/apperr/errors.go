package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNotValidated       = errors.New("timesheet not validated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

package errors

import "errors"

var (
	ErrMissingFields   = errors.New("all fields are required")
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrEmailExists     = errors.New("email already exists")
)

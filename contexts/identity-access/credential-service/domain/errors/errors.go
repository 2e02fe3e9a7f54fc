package errors

import "errors"

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrNothingToUpdate    = errors.New("at least username, email, or password must be provided")
)

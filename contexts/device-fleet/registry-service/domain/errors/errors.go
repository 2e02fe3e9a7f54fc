package errors

import "errors"

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrDeviceNotFound = errors.New("device not found")
)

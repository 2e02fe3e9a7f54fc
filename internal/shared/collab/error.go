package collab

import (
	"errors"
	"fmt"
)

// Error carries a collaborator service's response verbatim so the original
// caller receives the same status and body the collaborator produced.
type Error struct {
	StatusCode int
	Body       []byte
}

func NewError(statusCode int, body []byte) *Error {
	return &Error{StatusCode: statusCode, Body: body}
}

func (e *Error) Error() string {
	return fmt.Sprintf("collaborator returned status %d", e.StatusCode)
}

// As unwraps a collaborator error from an error chain.
func As(err error) (*Error, bool) {
	var collabErr *Error
	if errors.As(err, &collabErr) {
		return collabErr, true
	}
	return nil, false
}

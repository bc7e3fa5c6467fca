package httputil

import (
	"errors"
	"strings"
)

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidID        = errors.New("the specified resource ID is not a valid ID")
)

// ValidationError is returned when a request body is missing
// required fields or contains invalid values.
type ValidationError struct {
	Messages []string
}

func (e ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

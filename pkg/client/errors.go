package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNotLoggedIn is returned for calls that need a session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is an error response of the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// FormError lists the invalid fields of a form with a message for each.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, field := range []string{"email", "password", "confirmPassword", "name", "description", "envelopeId"} {
		if msg, ok := e.Fields[field]; ok {
			messages = append(messages, msg)
		}
	}

	return strings.Join(messages, ", ")
}

func newFormError(errs validator.ValidationErrors) *FormError {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field()] = formMessage(e)
	}

	return &FormError{Fields: fields}
}

func formMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "eqfield":
		return "Passwords do not match"
	}

	return fmt.Sprintf("%s is not valid", e.Field())
}

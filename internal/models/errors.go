package models

import (
	"errors"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("not found")
	ErrEmailInUse        = errors.New("User already exists")
	ErrEnvelopeReference = errors.New("there is no envelope for the envelopeId you specified")
)

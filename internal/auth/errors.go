package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrInvalidToken       = errors.New("Invalid token")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingCredentials = errors.New("Missing email or password")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

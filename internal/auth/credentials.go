package auth

import (
	"errors"
	"strings"
	"sync"

	"github.com/envelope-budget/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// dummyHash is compared against when no user exists for an email so that
// unknown emails take as long as wrong passwords.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := HashPassword("envelopes")
	return hash
})

// Credentials registers users and logs them in.
type Credentials struct {
	db       *gorm.DB
	verifier *Verifier
}

// NewCredentials creates a credential store on the database.
func NewCredentials(db *gorm.DB, verifier *Verifier) Credentials {
	return Credentials{
		db:       db,
		verifier: verifier,
	}
}

// Register creates a new user with the email and password.
//
// If the email is in use, models.ErrEmailInUse is returned.
func (c Credentials) Register(email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}

	inUse, err := models.EmailInUse(c.db, email)
	if err != nil {
		return models.User{}, err
	}
	if inUse {
		return models.User{}, models.ErrEmailInUse
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	return models.CreateUser(c.db, email, hash)
}

// Login verifies the email and password and issues a token for the user.
//
// Unknown emails and wrong passwords both return ErrInvalidCredentials.
func (c Credentials) Login(email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, err := models.UserByEmail(c.db, email)
	if errors.Is(err, models.ErrResourceNotFound) {
		ComparePassword(dummyHash(), password)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !ComparePassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, expires, err := c.verifier.Issue(user.ID)
	if err != nil {
		return "", err
	}

	log.Debug().Uint("user", user.ID).Time("expires", expires).Msg("Login")
	return token, nil
}

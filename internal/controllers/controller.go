package controllers

import (
	"errors"
	"net/http"

	"github.com/envelope-budget/backend/internal/auth"
	"github.com/envelope-budget/backend/internal/config"
	"github.com/envelope-budget/backend/internal/httperrors"
	"github.com/envelope-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	DB          *gorm.DB
	Credentials auth.Credentials
	Verifier    *auth.Verifier

	// StrictOwnership restricts updates and deletions to the owner of a
	// resource. Without it, any authenticated user can change a resource
	// by its ID.
	StrictOwnership bool
}

// New creates a Controller for the database with the configured token
// signing and ownership rules.
func New(db *gorm.DB, cfg config.Config) Controller {
	verifier := auth.NewVerifier(cfg.Secret, cfg.TokenLifetime)

	return Controller{
		DB:              db,
		Credentials:     auth.NewCredentials(db, verifier),
		Verifier:        verifier,
		StrictOwnership: cfg.StrictOwnership,
	}
}

// session returns the session of the authenticated user.
//
// Handlers using it are only reachable through auth.RequireSession, so a
// missing session is a server error.
func session(c *gin.Context) (auth.Session, bool) {
	s, ok := auth.SessionFrom(c)
	if !ok {
		httperrors.Respond(c, http.StatusInternalServerError, errors.New("no session on authenticated route"))
		return auth.Session{}, false
	}

	return s, true
}

// ownership returns the ownership rule for a mutation by the user.
func (co Controller) ownership(s auth.Session) models.Ownership {
	if co.StrictOwnership {
		return models.OwnedBy(s.UserID)
	}

	return models.Unscoped
}

// status returns the HTTP status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrPasswordTooLong):
		return http.StatusBadRequest
	}

	return httperrors.Status(err)
}

// handleError responds with the error and its status code.
func handleError(c *gin.Context, err error) {
	httperrors.Respond(c, status(err), err)
}

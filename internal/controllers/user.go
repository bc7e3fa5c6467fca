package controllers

import (
	"net/http"

	"github.com/envelope-budget/backend/internal/auth"
	"github.com/envelope-budget/backend/internal/httputil"
	"github.com/envelope-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/me", httputil.OptionsGet)
	r.GET("/me", auth.RequireSession(co.Verifier), co.GetCurrentUser)
}

// GetCurrentUser returns the authenticated user
//
//	@Summary		Current user
//	@Description	Returns the authenticated user with all envelopes and their expenses
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	User
//	@Failure		401	{object}	httperrors.HTTPError
//	@Failure		404	{object}	httperrors.HTTPError
//	@Failure		500	{object}	httperrors.HTTPError
//	@Router			/user/me [get]
//	@Router			/auth/me [get]
func (co Controller) GetCurrentUser(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	user, err := models.CurrentUser(co.DB, s.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUser(user))
}

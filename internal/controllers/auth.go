package controllers

import (
	"net/http"

	"github.com/envelope-budget/backend/internal/auth"
	"github.com/envelope-budget/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the routes for registration and login
// with the RouterGroup that is passed.
//
// The current user is also available under /me for clients that keep
// all session calls under the auth path.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)

	r.OPTIONS("/me", httputil.OptionsGet)
	r.GET("/me", auth.RequireSession(co.Verifier), co.GetCurrentUser)
}

// bindCredentials binds email and password. Any binding failure is
// reported as missing credentials.
func bindCredentials(c *gin.Context) (string, string, bool) {
	var req AuthRequest
	if err := httputil.BindData(c, &req); err != nil {
		handleError(c, auth.ErrMissingCredentials)
		return "", "", false
	}

	return *req.Email, *req.Password, true
}

// Register creates a new user
//
//	@Summary		Register
//	@Description	Creates a new user with the email and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	UserCreated
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		409			{object}	httperrors.HTTPError
//	@Failure		500			{object}	httperrors.HTTPError
//	@Param			credentials	body		AuthRequest	true	"Credentials"
//	@Router			/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	email, password, ok := bindCredentials(c)
	if !ok {
		return
	}

	user, err := co.Credentials.Register(email, password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserCreated{
		ID:    user.ID,
		Email: user.Email,
	})
}

// Login issues a token
//
//	@Summary		Login
//	@Description	Verifies email and password and returns a token valid for 7 days
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	Token
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		401			{object}	httperrors.HTTPError
//	@Failure		500			{object}	httperrors.HTTPError
//	@Param			credentials	body		AuthRequest	true	"Credentials"
//	@Router			/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	email, password, ok := bindCredentials(c)
	if !ok {
		return
	}

	token, err := co.Credentials.Login(email, password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, Token{Token: token})
}
